package sim

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/puzzle"
)

// Result summarizes a headless run.
type Result struct {
	LevelID       string
	Outcome       puzzle.Phase
	Ticks         uint64
	RemovedScrews int
	TotalScrews   int
	Transfers     int
	Advances      int
	Seed          int64

	// Aborted is set when the run reached no verdict: either the tick
	// budget ran out or the session parked (screws stranded in the
	// buffer with empty boards).
	Aborted bool
}

// RunLevel plays a level headlessly with the configured autoplay
// strategy and returns the outcome. At most one tap is attempted per
// tick, so animation latencies shape buffer pressure the way they do
// in the interactive frontend.
func RunLevel(lvl levels.Level, cfg config.Config, seed int64, logger *log.Logger) (Result, error) {
	strategy, err := NewStrategy(cfg.Autoplay.Strategy, seed)
	if err != nil {
		return Result{}, err
	}

	driver := NewDriver(cfg.Animation)
	engine := puzzle.NewEngine(lvl.ToSetup(), driver)
	driver.Bind(engine)
	rec := NewRecorder(engine, driver, logger)

	res := Result{
		LevelID:     lvl.ID,
		Seed:        seed,
		TotalScrews: lvl.TotalScrews(),
	}

	for engine.Phase() == puzzle.PhasePlaying {
		if driver.Tick() >= uint64(cfg.Autoplay.MaxTicks) {
			res.Aborted = true
			break
		}

		tapped := TapOnce(engine, strategy)
		if !tapped && driver.Idle() {
			// Nothing moving and nothing to tap: the session will
			// never produce another event.
			res.Aborted = true
			break
		}

		driver.Step()
	}

	res.Outcome = engine.Phase()
	res.Ticks = driver.Tick()
	res.RemovedScrews = engine.State().Session().RemovedScrews
	res.Transfers = rec.Transfers
	res.Advances = rec.Advances
	return res, nil
}

// TapOnce asks the strategy for a screw until a tap is accepted or the
// candidates run out. A candidate whose destination vanished between
// listing and tapping is simply dropped.
func TapOnce(e *puzzle.Engine, strategy Strategy) bool {
	candidates := movable(e)
	for len(candidates) > 0 {
		pick := strategy.Pick(candidates)
		if _, ok := e.Tap(pick); ok {
			return true
		}
		candidates = remove(candidates, pick)
	}
	return false
}

func movable(e *puzzle.Engine) []puzzle.ScrewID {
	var out []puzzle.ScrewID
	for _, s := range e.State().Screws() {
		if s.State == puzzle.ScrewInBoard && !s.Animating {
			out = append(out, s.ID)
		}
	}
	return out
}

func remove(ids []puzzle.ScrewID, id puzzle.ScrewID) []puzzle.ScrewID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Describe renders a one-line human summary of a result.
func Describe(r Result) string {
	verdict := r.Outcome.String()
	if r.Aborted {
		verdict = "no verdict"
	}
	return fmt.Sprintf("%s: %s after %d ticks (%d/%d screws, %d transfers, %d carousel advances)",
		r.LevelID, verdict, r.Ticks, r.RemovedScrews, r.TotalScrews, r.Transfers, r.Advances)
}
