package levels

import (
	"fmt"

	"github.com/vforge/screwsort/internal/puzzle"
)

// ValidationError contains details about a level validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate performs structural validation of a level.
// Checks:
//   - IDs and capacities are set
//   - Tray count fits the carousel
//   - Every screw color has a tray
//   - No color has more screws than its trays can ever absorb
func Validate(l Level) error {
	if l.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if l.TrayCapacity <= 0 || l.BufferCapacity <= 0 {
		return ValidationError{
			Code:    "BAD_CAPACITY",
			Message: fmt.Sprintf("tray capacity %d, buffer capacity %d, both must be positive", l.TrayCapacity, l.BufferCapacity),
		}
	}
	if len(l.Trays) == 0 {
		return ValidationError{Code: "NO_TRAYS", Message: "level has no trays"}
	}
	if len(l.Trays) > puzzle.CarouselSlots {
		return ValidationError{
			Code:    "TOO_MANY_TRAYS",
			Message: fmt.Sprintf("%d trays exceed the %d carousel slots", len(l.Trays), puzzle.CarouselSlots),
		}
	}
	if l.TotalScrews() == 0 {
		return ValidationError{Code: "NO_SCREWS", Message: "level has no screws"}
	}

	trayCount := make(map[puzzle.Color]int)
	for _, c := range l.Trays {
		trayCount[c]++
	}
	screwCount := make(map[puzzle.Color]int)
	for _, p := range l.Parts {
		for _, c := range p.Screws {
			screwCount[c]++
		}
	}

	for c := puzzle.Color(0); c < puzzle.ColorCount; c++ {
		screws := screwCount[c]
		if screws == 0 {
			continue
		}
		if trayCount[c] == 0 {
			return ValidationError{
				Code:    "UNMATCHED_COLOR",
				Message: fmt.Sprintf("color %s: %d screws but no tray", c, screws),
			}
		}
		// A retiring tray leaves with exactly its capacity in screws,
		// so each color can absorb at most trays*capacity overall.
		if max := trayCount[c] * l.TrayCapacity; screws > max {
			return ValidationError{
				Code:    "OVERSUBSCRIBED_COLOR",
				Message: fmt.Sprintf("color %s: %d screws exceed tray space for %d", c, screws, max),
			}
		}
	}

	return nil
}
