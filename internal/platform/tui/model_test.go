package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/puzzle"
)

func watchLevel() levels.Level {
	return levels.Level{
		ID:             "tui-test",
		Name:           "TUI Test",
		TrayCapacity:   3,
		BufferCapacity: 5,
		Trays:          []puzzle.Color{puzzle.ColorRed, puzzle.ColorBlue},
		Parts: []puzzle.PartSetup{
			{Screws: []puzzle.Color{puzzle.ColorRed, puzzle.ColorRed, puzzle.ColorRed}},
			{Screws: []puzzle.Color{puzzle.ColorBlue, puzzle.ColorBlue, puzzle.ColorBlue}},
		},
	}
}

func tick(t *testing.T, m WatchModel) WatchModel {
	t.Helper()
	newModel, _ := m.Update(TickMsg(time.Now()))
	wm, ok := newModel.(WatchModel)
	if !ok {
		t.Fatalf("Update returned %T, want WatchModel", newModel)
	}
	return wm
}

func TestWatchModelPlaysToWin(t *testing.T) {
	m, err := NewWatchModel(watchLevel(), config.DefaultConfig(), nil, 1, nil)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}

	for i := 0; i < 1000 && m.engine.Phase() == puzzle.PhasePlaying; i++ {
		m = tick(t, m)
	}

	if got := m.engine.Phase(); got != puzzle.PhaseWon {
		t.Fatalf("phase after autoplay = %v, want won", got)
	}

	view := m.View()
	if !strings.Contains(view, "LEVEL CLEARED") {
		t.Error("view missing win banner")
	}
	if !strings.Contains(view, "6/6 removed") {
		t.Errorf("view missing final screw count:\n%s", view)
	}
}

func TestWatchModelPauseStopsTicks(t *testing.T) {
	m, err := NewWatchModel(watchLevel(), config.DefaultConfig(), nil, 1, nil)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = newModel.(WatchModel)
	if !m.paused {
		t.Fatal("p did not pause")
	}

	before := m.driver.Tick()
	m = tick(t, m)
	if m.driver.Tick() != before {
		t.Error("driver advanced while paused")
	}
}

func TestWatchModelRestartResets(t *testing.T) {
	m, err := NewWatchModel(watchLevel(), config.DefaultConfig(), nil, 1, nil)
	if err != nil {
		t.Fatalf("NewWatchModel: %v", err)
	}

	for i := 0; i < 20; i++ {
		m = tick(t, m)
	}
	if m.driver.Tick() == 0 {
		t.Fatal("driver never advanced")
	}

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = newModel.(WatchModel)

	if m.driver.Tick() != 0 {
		t.Errorf("tick after restart = %d, want 0", m.driver.Tick())
	}
	if got := m.engine.State().Session().RemovedScrews; got != 0 {
		t.Errorf("removed screws after restart = %d, want 0", got)
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	lvls := []levels.Level{watchLevel()}
	m := NewMenuModel(lvls, nil, 80, 24)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := newModel.(MenuModel)

	if mm.Selected() == nil || mm.Selected().ID != "tui-test" {
		t.Fatalf("Selected() = %+v, want tui-test", mm.Selected())
	}
}

func TestCenterText(t *testing.T) {
	got := centerText("ab", 6)
	if got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	// Wider than the target width passes through unchanged.
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText = %q, want unchanged", got)
	}
}
