// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vforge/screwsort/internal/puzzle"
)

// Default capacities applied when a level file omits them.
const (
	DefaultTrayCapacity   = 3
	DefaultBufferCapacity = 5
)

// YAMLLevel represents the YAML structure of a level file.
type YAMLLevel struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	TrayCapacity   int               `yaml:"tray_capacity,omitempty"`
	BufferCapacity int               `yaml:"buffer_capacity,omitempty"`
	Trays          []string          `yaml:"trays"`
	Parts          []YAMLPart        `yaml:"parts"`
	Metadata       map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPart represents one board and its mounted screws.
type YAMLPart struct {
	Layer  int      `yaml:"layer,omitempty"`
	Screws []string `yaml:"screws"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID             string
	Name           string
	TrayCapacity   int
	BufferCapacity int
	Trays          []puzzle.Color
	Parts          []puzzle.PartSetup
	Metadata       map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:             yl.ID,
		Name:           yl.Name,
		TrayCapacity:   yl.TrayCapacity,
		BufferCapacity: yl.BufferCapacity,
		Metadata:       yl.Metadata,
	}
	if level.TrayCapacity <= 0 {
		level.TrayCapacity = DefaultTrayCapacity
	}
	if level.BufferCapacity <= 0 {
		level.BufferCapacity = DefaultBufferCapacity
	}

	for i, name := range yl.Trays {
		color, ok := puzzle.ParseColor(name)
		if !ok {
			return Level{}, fmt.Errorf("tray %d: unknown color %q", i, name)
		}
		level.Trays = append(level.Trays, color)
	}

	for i, p := range yl.Parts {
		part := puzzle.PartSetup{Layer: p.Layer}
		for j, name := range p.Screws {
			color, ok := puzzle.ParseColor(name)
			if !ok {
				return Level{}, fmt.Errorf("part %d screw %d: unknown color %q", i, j, name)
			}
			part.Screws = append(part.Screws, color)
		}
		level.Parts = append(level.Parts, part)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ToSetup converts the parsed level into an engine setup.
func (l *Level) ToSetup() puzzle.Setup {
	return puzzle.Setup{
		TrayCapacity:   l.TrayCapacity,
		BufferCapacity: l.BufferCapacity,
		Trays:          l.Trays,
		Parts:          l.Parts,
		Win:            puzzle.WinAllScrewsRemoved,
	}
}
