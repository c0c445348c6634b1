package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vforge/screwsort/internal/puzzle"
)

// Entry is one recorded bus event with the tick it fired on.
type Entry struct {
	Tick  uint64
	Event puzzle.Event
}

// Recorder observes the session event stream, stamping every event
// with the driver clock. It also keeps the counters the session store
// and the stats command report.
type Recorder struct {
	driver *Driver
	logger *log.Logger

	Entries   []Entry
	Transfers int
	Advances  int
	Freed     int
}

// NewRecorder creates a recorder and attaches it to the engine as a
// read-only observer. Pass a nil logger to record silently.
func NewRecorder(e *puzzle.Engine, d *Driver, logger *log.Logger) *Recorder {
	r := &Recorder{driver: d, logger: logger}
	e.Observe(r.observe)
	return r
}

func (r *Recorder) observe(ev puzzle.Event) {
	r.Entries = append(r.Entries, Entry{Tick: r.driver.Tick(), Event: ev})

	switch e := ev.(type) {
	case puzzle.TransferStarted:
		r.Transfers++
		if r.logger != nil {
			r.logger.Debug("transfer", "tick", r.driver.Tick(), "screw", e.Screw, "tray", e.Tray, "slot", e.Slot)
		}
	case puzzle.CarouselAdvanced:
		r.Advances++
		if r.logger != nil {
			r.logger.Debug("carousel advanced", "tick", r.driver.Tick(), "retired", e.Retired, "promoted", e.Promoted)
		}
	case puzzle.PartFreed:
		r.Freed++
		if r.logger != nil {
			r.logger.Debug("part freed", "tick", r.driver.Tick(), "part", e.Part)
		}
	case puzzle.GameWon:
		if r.logger != nil {
			r.logger.Info("level won", "tick", r.driver.Tick())
		}
	case puzzle.GameStuck:
		if r.logger != nil {
			r.logger.Info("level stuck", "tick", r.driver.Tick())
		}
	}
}

// Reset clears the recording for a level restart.
func (r *Recorder) Reset() {
	r.Entries = r.Entries[:0]
	r.Transfers = 0
	r.Advances = 0
	r.Freed = 0
}
