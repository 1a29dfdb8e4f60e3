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

	"github.com/yoimerdr/ludens-sub001/internal/player"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

// Game is a script loaded into each session's runtime.
type Game struct {
	Name   string
	Source string
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ludens/ssh_host_ed25519.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Game       Game
	Controls   player.Config
	BridgeName string
	HoldWindow time.Duration
	Logger     *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2323",
		IdleTimeout: 30 * time.Minute,
		Controls:    player.DefaultConfig(),
		BridgeName:  scripthost.DefaultBridgeName,
		HoldWindow:  DefaultHoldWindow,
	}
}

// SSHServer serves the control overlay over SSH. Every session gets its
// own script runtime; all sessions share the settings repository.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	repo   *settings.Repository
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, repo *settings.Repository) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "ludens-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		repo:   repo,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath, err := settings.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ludens", "ssh_host_ed25519")
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
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a runtime and an overlay for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	ctx := sshSession.Context()
	logger := s.logger.WithPrefix("ludens-ssh " + sshSession.User())

	rt, err := NewSessionRuntime(ctx, s.config.Game, s.config.BridgeName, logger)
	if err != nil {
		s.logger.Error("cannot start game", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	go func() {
		<-ctx.Done()
		rt.Close()
	}()

	cfg := s.config.Controls
	cfg.Logger = logger
	controls := player.NewControls(rt, cfg)

	model := NewModel(ctx, controls, s.repo,
		WithHoldWindow(s.config.HoldWindow),
		WithTitle(fmt.Sprintf("ludens · %s · %s", s.config.Game.Name, sshSession.User())),
		WithLogger(logger),
	)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// NewSessionRuntime starts a runtime and loads game into it. The runtime is
// closed if loading fails.
func NewSessionRuntime(ctx context.Context, game Game, bridge string, logger *log.Logger) (*scripthost.Runtime, error) {
	rt := scripthost.NewRuntime(
		scripthost.WithLogger(logger),
		scripthost.WithBridgeName(bridge),
	)
	rt.OnPlugin(func(st scripthost.PluginState) {
		logger.Debug("plugin state", "enabled", st.IsEnabled, "loading", st.IsLoading)
	})
	if err := rt.Load(ctx, game.Name, game.Source); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
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
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.Game.Name)

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
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
