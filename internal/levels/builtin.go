package levels

import (
	"embed"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the embedded level set, sorted by ID. Files that fail
// to parse or validate are skipped; the set ships with the binary and
// is covered by tests, so a miss here means a broken build, not bad
// user input.
func Builtin() []Level {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}

	var out []Level
	for _, entry := range entries {
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			continue
		}
		parsed, err := parseByExtension(data, ".yaml")
		if err != nil {
			continue
		}
		lvl := fromParsed(parsed)
		if Validate(lvl) != nil {
			continue
		}
		out = append(out, lvl)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
