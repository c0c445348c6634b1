package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/puzzle"
	"github.com/vforge/screwsort/internal/sim"
	"github.com/vforge/screwsort/internal/storage"
)

// Tick rate bounds for the speed controls.
const (
	minTickRate = 5
	maxTickRate = 120
)

// WatchModel is the Bubble Tea model that plays a level with the
// autoplay strategy and renders every tick. The engine is only touched
// from Update, which keeps the single-threaded session contract.
type WatchModel struct {
	level  levels.Level
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger

	engine   *puzzle.Engine
	driver   *sim.Driver
	recorder *sim.Recorder
	strategy sim.Strategy
	seed     int64

	keys WatchKeyMap
	help help.Model

	width    int
	height   int
	tickRate int
	paused   bool
	parked   bool
	saved    bool
	backing  bool
	quitting bool
}

// NewWatchModel creates a watch model for one level. Pass a nil store
// to skip session persistence and a nil logger to run silently.
func NewWatchModel(lvl levels.Level, cfg config.Config, store *storage.Store, seed int64, logger *log.Logger) (WatchModel, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strategy, err := sim.NewStrategy(cfg.Autoplay.Strategy, seed)
	if err != nil {
		return WatchModel{}, err
	}

	driver := sim.NewDriver(cfg.Animation)
	engine := puzzle.NewEngine(lvl.ToSetup(), driver)
	driver.Bind(engine)
	recorder := sim.NewRecorder(engine, driver, logger)

	h := help.New()
	h.ShowAll = false

	return WatchModel{
		level:    lvl,
		cfg:      cfg,
		store:    store,
		logger:   logger,
		engine:   engine,
		driver:   driver,
		recorder: recorder,
		strategy: strategy,
		seed:     seed,
		keys:     DefaultWatchKeyMap(),
		help:     h,
		tickRate: cfg.UI.TickRate,
	}, nil
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages for the watch screen.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backing = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Restart):
		return m.restart()

	case key.Matches(msg, m.keys.Faster):
		m.tickRate = min(m.tickRate+5, maxTickRate)

	case key.Matches(msg, m.keys.Slower):
		m.tickRate = max(m.tickRate-5, minTickRate)
	}
	return m, nil
}

// restart resets the session for a fresh run with a new seed. Stale
// animation completions from the previous run were dropped by the
// driver reset, so the rebuilt session starts clean.
func (m WatchModel) restart() (tea.Model, tea.Cmd) {
	m.seed = time.Now().UnixNano()

	// The strategy name was validated at construction.
	strategy, err := sim.NewStrategy(m.cfg.Autoplay.Strategy, m.seed)
	if err != nil {
		return m, nil
	}
	m.strategy = strategy

	m.engine.Reset()
	m.driver.Reset()
	m.recorder.Reset()
	m.paused = false
	m.parked = false
	m.saved = false
	return m, nil
}

// handleTick advances the session by one driver tick.
func (m WatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.parked || m.engine.Phase() != puzzle.PhasePlaying {
		m.saveOnce()
		return m, tickCmd(m.tickRate)
	}

	tapped := sim.TapOnce(m.engine, m.strategy)
	if !tapped && m.driver.Idle() {
		// Nothing moving and nothing to tap. The session can never
		// produce another event.
		m.parked = true
		m.saveOnce()
		return m, tickCmd(m.tickRate)
	}

	m.driver.Step()
	m.saveOnce()
	return m, tickCmd(m.tickRate)
}

// saveOnce persists the finished session, best effort, exactly once.
func (m *WatchModel) saveOnce() {
	if m.saved || m.store == nil {
		return
	}
	phase := m.engine.Phase()
	if phase == puzzle.PhasePlaying && !m.parked {
		return
	}

	outcome := storage.OutcomeAborted
	switch phase {
	case puzzle.PhaseWon:
		outcome = storage.OutcomeWon
	case puzzle.PhaseStuck:
		outcome = storage.OutcomeStuck
	}

	rec := storage.SessionRecord{
		LevelID:       m.level.ID,
		Outcome:       outcome,
		ScrewsRemoved: m.engine.State().Session().RemovedScrews,
		ScrewsTotal:   m.level.TotalScrews(),
		Transfers:     m.recorder.Transfers,
		Advances:      m.recorder.Advances,
		DurationTicks: int64(m.driver.Tick()),
		Seed:          m.seed,
	}
	if _, err := m.store.SaveSession(rec); err != nil && m.logger != nil {
		m.logger.Warn("could not save session", "error", err)
	}
	m.saved = true
}

// View renders the watch screen.
func (m WatchModel) View() string {
	if m.quitting || m.backing {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s  seed %d  tick %d @ %d/s", m.level.Name, m.seed, m.driver.Tick(), m.tickRate)
	b.WriteString(labelStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(RenderSession(m.engine, m.width))
	b.WriteString("\n")

	switch {
	case m.paused:
		b.WriteString(pausedStyle.Render("PAUSED"))
		b.WriteString("\n")
	case m.parked:
		b.WriteString(stuckStyle.Render("PARKED - buffered screws with no matching tray coming"))
		b.WriteString("\n")
	default:
		if banner := renderPhaseBanner(m.engine.Phase(), m.width); banner != "" {
			b.WriteString(banner)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// BackToMenu returns true if the user asked to return to the picker.
func (m WatchModel) BackToMenu() bool {
	return m.backing
}

// IsQuitting returns true if the user asked to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// RunWatch runs the watch screen standalone, for the local watch
// command.
func RunWatch(lvl levels.Level, cfg config.Config, store *storage.Store, seed int64, logger *log.Logger) error {
	model, err := NewWatchModel(lvl, cfg, store, seed, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
