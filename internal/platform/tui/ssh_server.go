package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vforge/screwsort/internal/config"
	"github.com/vforge/screwsort/internal/levels"
	"github.com/vforge/screwsort/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.screwsort/host_key.
	HostKeyPath string

	// DBPath is the path to the sessions database.
	DBPath string

	// LevelsDir is an extra directory of level files merged over the
	// builtin set.
	LevelsDir string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:     fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		DBPath:      "~/.screwsort/sessions.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server serving watch sessions.
type SSHServer struct {
	config SSHServerConfig
	appCfg config.Config
	server *ssh.Server
	store  *storage.Store
	levels []levels.Level
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, appCfg config.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "screwsort-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage
	}

	// Levels are loaded once at startup; every SSH session sees the
	// same set.
	lvls, err := levels.NewLoader(cfg.LevelsDir).LoadAll()
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		appCfg: appCfg,
		store:  store,
		levels: lvls,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".screwsort", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.appCfg, s.levels, pty.Window.Width, pty.Window.Height, s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", len(s.levels))

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen identifies the active screen of a terminal session.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenWatch
	screenStats
)

// SessionModel manages the full session flow: picker -> watch -> picker,
// with the stats screen reachable from the picker. This is the
// top-level model used for SSH sessions and the local interactive mode.
type SessionModel struct {
	store  *storage.Store
	cfg    config.Config
	levels []levels.Level
	logger *log.Logger

	screen   sessionScreen
	menu     MenuModel
	watch    *WatchModel
	stats    *StatsModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg config.Config, lvls []levels.Level, width, height int, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		cfg:    cfg,
		levels: lvls,
		logger: logger,
		menu:   NewMenuModel(lvls, levelStats(store), width, height),
		width:  width,
		height: height,
	}
}

// levelStats loads the per-level aggregates for the picker, best effort.
func levelStats(store *storage.Store) map[string]*storage.LevelStats {
	if store == nil {
		return nil
	}
	stats, err := store.GetAllLevelStats()
	if err != nil {
		return nil
	}
	return stats
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenWatch:
		return m.updateWatch(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when on the level picker.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		stats := NewStatsModel(m.store, m.levels, m.width, m.height)
		m.stats = &stats
		m.screen = screenStats
		return m, m.stats.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		watch, err := NewWatchModel(*selected, m.cfg, m.store, 0, m.logger)
		if err != nil {
			// Shouldn't happen; the strategy name comes from config
			// validated at startup.
			m.menu = NewMenuModel(m.levels, levelStats(m.store), m.width, m.height)
			return m, nil
		}
		m.watch = &watch
		m.screen = screenWatch
		return m, m.watch.Init()
	}

	return m, cmd
}

// updateWatch handles updates when watching a level.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if watchModel, ok := newModel.(WatchModel); ok {
		m.watch = &watchModel
	}

	if m.watch.BackToMenu() {
		m.screen = screenMenu
		m.watch = nil
		m.menu = NewMenuModel(m.levels, levelStats(m.store), m.width, m.height)
		return m, m.menu.Init()
	}

	if m.watch.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateStats handles updates when on the stats screen.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if statsModel, ok := newModel.(StatsModel); ok {
		m.stats = &statsModel
	}

	if m.stats.IsGoingBack() {
		m.screen = screenMenu
		m.stats = nil
		m.menu = NewMenuModel(m.levels, levelStats(m.store), m.width, m.height)
		return m, m.menu.Init()
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenWatch:
		if m.watch != nil {
			return m.watch.View()
		}
	case screenStats:
		if m.stats != nil {
			return m.stats.View()
		}
	}
	return m.menu.View()
}

// RunSession runs the full picker/watch/stats flow in the local
// terminal.
func RunSession(store *storage.Store, cfg config.Config, lvls []levels.Level, width, height int, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, lvls, width, height, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
