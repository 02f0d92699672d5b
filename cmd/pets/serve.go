package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pets/internal/engine"
	"github.com/vovakirdan/tui-pets/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server, one world per session",
	Long: `Start an SSH server. Everyone who connects gets a private world
with the configured pack; pets can be saved into the shared database.

Examples:
  pets serve
  pets serve --ssh :2222 --pack shimeji
  ssh -p 23235 localhost`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "Address to listen on")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (default: ~/.pets/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Close idle sessions after this long")
}

func runServe(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("%v", err)
	}
	// Fail early on a broken pack instead of in every session.
	if _, err := s.newEngine(); err != nil {
		fail("%v", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = flagIdleTimeout
	cfg.DBPath = s.dbPath
	cfg.Pack = s.pack
	cfg.MaxPets = s.cfg.Simulation.MaxPets
	cfg.Journal = s.cfg.Storage.Journal

	server, err := tui.NewSSHServer(cfg, func() (*engine.Engine, error) {
		return s.newEngine()
	})
	if err != nil {
		fail("%v", err)
	}
	if err := server.ListenAndServe(); err != nil {
		fail("%v", err)
	}
}
