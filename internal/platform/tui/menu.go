package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/storage"
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items  []levels.Level
	stats  map[string]*storage.LevelStats
	cursor int
	width  int
	height int

	keys MenuKeyMap
	help help.Model

	quitting  bool
	openStats bool
	selected  *levels.Level
}

// NewMenuModel creates a level picker over the given level set. Stats
// may be nil when no store is available.
func NewMenuModel(lvls []levels.Level, stats map[string]*storage.LevelStats, width, height int) MenuModel {
	h := help.New()
	h.ShowAll = false

	return MenuModel{
		items:  lvls,
		stats:  stats,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Stats):
		m.openStats = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  S C R E W S O R T  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Select a level to watch"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-24s %2d screws", cursor, lvl.Name, lvl.TotalScrews())
		if ls, ok := m.stats[lvl.ID]; ok && ls.Plays > 0 {
			line += fmt.Sprintf("   %d/%d won", ls.Wins, ls.Plays)
			if ls.BestTicks > 0 {
				line += fmt.Sprintf(", best %d ticks", ls.BestTicks)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level, or nil if none was chosen.
func (m MenuModel) Selected() *levels.Level {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if the user requested the stats screen.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}
