package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pets/internal/config"
	"github.com/vovakirdan/tui-pets/internal/core"
	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/storage"
)

// EngineFactory builds a fresh engine. Every SSH session gets its own,
// since an engine must be driven from a single goroutine.
type EngineFactory func() (*engine.Engine, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pets/host_key.
	HostKeyPath string

	// DBPath is the path to the pets database. Empty disables persistence.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Pack is the sprite pack every session runs.
	Pack string

	// MaxPets caps the pets of one session.
	MaxPets int

	// Journal records behavior changes of every session.
	Journal bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.pets/pets.db",
		IdleTimeout: 30 * time.Minute,
		Pack:        "shimeji",
		MaxPets:     8,
	}
}

// SSHServer wraps a Wish SSH server that gives each session its own world.
type SSHServer struct {
	config    SSHServerConfig
	newEngine EngineFactory
	server    *ssh.Server
	store     *storage.Store
	logger    *log.Logger
	sessions  atomic.Int32
}

// NewSSHServer creates a new SSH server with the given configuration.
// A database that cannot be opened only disables saving.
func NewSSHServer(cfg SSHServerConfig, newEngine EngineFactory) (*SSHServer, error) {
	srv := &SSHServer{
		config:    cfg,
		newEngine: newEngine,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pets-ssh",
		}),
	}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if cfg.DBPath != "" {
		if srv.store, err = storage.Open(cfg.DBPath); err != nil {
			srv.logger.Warn("saving disabled, could not open pets database", "error", err)
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// resolveHostKey expands the key path, defaulting to ~/.pets/host_key, and
// makes sure its directory exists. Wish generates the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = "~/.pets/host_key"
	}
	path = config.ExpandHome(path)
	if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("cannot resolve home directory for %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler creates a viewer with a private world for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	e, err := s.newEngine()
	if err != nil {
		s.logger.Error("cannot build engine", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	model, err := NewModel(e, Options{
		Pack: s.config.Pack,
		Config: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: e.Params().TickRate,
			Seed:     time.Now().UnixNano(),
		},
		MaxPets: s.config.MaxPets,
		Store:   s.store,
		Journal: s.config.Journal,
		Logger:  s.logger.With("user", sshSession.User()),
	})
	if err != nil {
		s.logger.Error("cannot start session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs session start and end with the number of live worlds.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("session started", "user", sess.User(), "remote", remote, "worlds", s.sessions.Add(1))
		defer func() {
			s.logger.Info("session ended",
				"user", sess.User(),
				"remote", remote,
				"duration", time.Since(start).Round(time.Second),
				"worlds", s.sessions.Add(-1),
			)
		}()
		next(sess)
	}
}

// Sessions returns the number of connected sessions.
func (s *SSHServer) Sessions() int {
	return int(s.sessions.Load())
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "pack", s.config.Pack)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down", "worlds", s.Sessions())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
