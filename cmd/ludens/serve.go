package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yoimerdr/ludens-sub001/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [game.js]",
	Short: "Serve the control overlay over SSH",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own script runtime running the game and its
own overlay. All sessions share the persisted settings.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses serve.host_key from the configuration,
    auto-generated if missing

Examples:
  ludens serve                           # Listen on serve.host:serve.port
  ludens serve --ssh :2222               # Listen on port 2222
  ludens serve ./game.js                 # Serve a specific game

Users can connect with:
  ssh localhost -p 2323`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), default from config")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	path := app.Game.Path
	if len(args) == 1 {
		path = args[0]
	}
	game, err := loadGame(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	repo, _, closeRepo, err := openRepository(context.Background(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = fmt.Sprintf("%s:%d", app.Serve.Host, app.Serve.Port)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	cfg.HostKeyPath = app.Serve.HostKey
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = game
	cfg.Controls = controlsConfig()
	cfg.BridgeName = app.Game.Bridge
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting ludens SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
