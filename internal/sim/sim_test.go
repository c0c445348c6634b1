package sim

import (
	"testing"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/puzzle"
)

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Autoplay.MaxTicks = 50000
	return cfg
}

func simpleLevel() levels.Level {
	return levels.Level{
		ID:             "sim-simple",
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []puzzle.Color{puzzle.ColorRed, puzzle.ColorBlue},
		Parts: []puzzle.PartSetup{
			{Screws: []puzzle.Color{puzzle.ColorRed, puzzle.ColorRed, puzzle.ColorRed}},
			{Screws: []puzzle.Color{puzzle.ColorBlue, puzzle.ColorBlue, puzzle.ColorBlue}},
		},
	}
}

func TestDriverDeliversAfterLatency(t *testing.T) {
	cfg := config.AnimationConfig{RemovalTicks: 3}
	d := NewDriver(cfg)
	lvl := simpleLevel()
	e := puzzle.NewEngine(lvl.ToSetup(), d)
	d.Bind(e)

	if _, ok := e.Tap(1); !ok {
		t.Fatal("Tap rejected")
	}

	d.Step()
	d.Step()
	if got := e.State().Screw(1).State; got != puzzle.ScrewAnimating {
		t.Fatalf("screw state before due tick = %v, want animating", got)
	}

	d.Step()
	if got := e.State().Screw(1).State; got != puzzle.ScrewInTray {
		t.Fatalf("screw state at due tick = %v, want in-tray", got)
	}
	if !d.Idle() {
		t.Error("driver not idle after delivering its only completion")
	}
}

func TestEagerRunWins(t *testing.T) {
	res, err := RunLevel(simpleLevel(), testConfig(), 1, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}
	if res.Aborted || res.Outcome != puzzle.PhaseWon {
		t.Fatalf("result = %s, want won", Describe(res))
	}
	if res.RemovedScrews != 6 || res.TotalScrews != 6 {
		t.Errorf("screws = %d/%d, want 6/6", res.RemovedScrews, res.TotalScrews)
	}
}

func TestEagerSolvesBuiltinIntro(t *testing.T) {
	loader := levels.NewLoader("")
	lvl, err := loader.LoadByID("001-intro")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}

	res, err := RunLevel(lvl, testConfig(), 1, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}
	if res.Aborted || res.Outcome != puzzle.PhaseWon {
		t.Fatalf("result = %s, want won", Describe(res))
	}
}

func TestRunReportsStuck(t *testing.T) {
	lvl := levels.Level{
		ID:             "sim-stuck",
		TrayCapacity:   3,
		BufferCapacity: 1,
		Trays:          []puzzle.Color{puzzle.ColorBlue},
		Parts: []puzzle.PartSetup{
			{Screws: []puzzle.Color{puzzle.ColorRed, puzzle.ColorRed}},
		},
	}

	res, err := RunLevel(lvl, testConfig(), 1, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}
	if res.Aborted || res.Outcome != puzzle.PhaseStuck {
		t.Fatalf("result = %s, want stuck", Describe(res))
	}
}

func TestRunAbortsParkedSession(t *testing.T) {
	// The red screw parks in the buffer with every board empty; the
	// session can never reach a verdict and the runner must notice.
	lvl := levels.Level{
		ID:             "sim-parked",
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []puzzle.Color{puzzle.ColorBlue},
		Parts: []puzzle.PartSetup{
			{Screws: []puzzle.Color{puzzle.ColorBlue, puzzle.ColorRed}},
		},
	}

	res, err := RunLevel(lvl, testConfig(), 1, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}
	if !res.Aborted {
		t.Fatalf("result = %s, want aborted with no verdict", Describe(res))
	}
	if res.Outcome != puzzle.PhasePlaying {
		t.Errorf("outcome = %v, want playing", res.Outcome)
	}
}

func TestRandomRunsAreDeterministicPerSeed(t *testing.T) {
	loader := levels.NewLoader("")
	lvl, err := loader.LoadByID("003-carousel")
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}

	cfg := testConfig()
	cfg.Autoplay.Strategy = "random"

	first, err := RunLevel(lvl, cfg, 42, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}
	second, err := RunLevel(lvl, cfg, 42, nil)
	if err != nil {
		t.Fatalf("RunLevel: %v", err)
	}

	if first != second {
		t.Errorf("same seed diverged:\n  first  = %+v\n  second = %+v", first, second)
	}
}

func TestUnknownStrategyRejected(t *testing.T) {
	cfg := testConfig()
	cfg.Autoplay.Strategy = "psychic"
	if _, err := RunLevel(simpleLevel(), cfg, 1, nil); err == nil {
		t.Fatal("RunLevel accepted unknown strategy")
	}
}
