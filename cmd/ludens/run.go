package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yoimerdr/ludens-sub001/internal/platform/tui"
	"github.com/yoimerdr/ludens-sub001/internal/player"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
)

var runCmd = &cobra.Command{
	Use:   "run [game.js]",
	Short: "Play a game with the terminal control overlay",
	Long: `Load a game script into the embedded runtime and drive it from the terminal.

Without an argument the game.path from the configuration is used, and when
that is empty a bundled demo game is played.

Controls:
  Arrows/WASD    - Joystick
  Z X C V        - A B X Y
  [ ]            - L R
  Enter / Esc    - Start / Select
  F2 F3 F4       - FPS meter, stretch, fullscreen
  M / F          - Toggle mute / FPS (persisted)
  O / + / -      - Toggle overlay, change its opacity
  ?              - Help
  Q/Ctrl+C       - Quit

Examples:
  ludens run
  ludens run ./game.js
  ludens run ./game.js --log-file /tmp/ludens.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

// loadGame reads the game script. An empty path selects the bundled demo.
func loadGame(path string) (tui.Game, error) {
	if path == "" {
		return tui.Game{Name: "demo.js", Source: scripthost.DemoGame}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tui.Game{}, fmt.Errorf("cannot read game %s: %w", path, err)
	}
	return tui.Game{Name: filepath.Base(path), Source: string(data)}, nil
}

// controlsConfig builds the port configuration from the app config.
func controlsConfig() player.Config {
	cfg := player.DefaultConfig()
	cfg.Namespace = app.Game.Namespace
	cfg.ReleaseTimeout = app.Evaluator.TimeoutMS
	return cfg
}

func runRun(_ *cobra.Command, args []string) {
	path := app.Game.Path
	if len(args) == 1 {
		path = args[0]
	}

	game, err := loadGame(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: run needs an interactive terminal")
		os.Exit(1)
	}
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := quietLogger()

	rt, err := tui.NewSessionRuntime(ctx, game, app.Game.Bridge, l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	repo, _, closeRepo, err := openRepository(ctx, l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	cfg := controlsConfig()
	cfg.Logger = l
	controls := player.NewControls(rt, cfg)

	runErr := tui.Run(ctx, controls, repo,
		tui.WithTitle("ludens · "+game.Name),
		tui.WithSize(width, height),
		tui.WithLogger(l),
	)
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running overlay: %v\n", runErr)
		os.Exit(1)
	}
}
