// Package levels provides level loading and validation. This package
// depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vforge/screwsort/internal/levels/formats"
	"github.com/vforge/screwsort/internal/puzzle"
)

// Level represents a complete level definition.
type Level struct {
	ID             string
	Name           string
	TrayCapacity   int
	BufferCapacity int
	Trays          []puzzle.Color
	Parts          []puzzle.PartSetup
	Metadata       map[string]string
	FilePath       string // empty for built-in levels
}

// ToSetup converts the level into an engine setup.
func (l *Level) ToSetup() puzzle.Setup {
	return puzzle.Setup{
		TrayCapacity:   l.TrayCapacity,
		BufferCapacity: l.BufferCapacity,
		Trays:          l.Trays,
		Parts:          l.Parts,
		Win:            puzzle.WinAllScrewsRemoved,
	}
}

// TotalScrews counts the screws placed by the level.
func (l *Level) TotalScrews() int {
	n := 0
	for _, p := range l.Parts {
		n += len(p.Screws)
	}
	return n
}

// Loader handles loading levels from a directory, falling back to the
// built-in set when no directory is configured.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader. An empty root serves only the
// built-in levels.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns every available level: the built-in set plus any
// valid files under the root directory, sorted by ID. A directory
// level with the same ID as a built-in one replaces it.
func (l *Loader) LoadAll() ([]Level, error) {
	byID := make(map[string]Level)
	for _, lvl := range Builtin() {
		byID[lvl.ID] = lvl
	}

	if l.Root != "" {
		err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
				return nil
			}

			lvl, err := l.LoadFile(path)
			if err != nil {
				// Skip invalid files
				return nil
			}
			byID[lvl.ID] = lvl
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
		}
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	lvl := fromParsed(parsed)
	lvl.FilePath = path
	if err := Validate(lvl); err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", path, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func fromParsed(parsed formats.Level) Level {
	return Level{
		ID:             parsed.ID,
		Name:           parsed.Name,
		TrayCapacity:   parsed.TrayCapacity,
		BufferCapacity: parsed.BufferCapacity,
		Trays:          parsed.Trays,
		Parts:          parsed.Parts,
		Metadata:       parsed.Metadata,
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
