// ludens drives a hosted web game from the terminal: key events, audio and
// FPS toggles are turned into scripts and run inside an embedded JavaScript
// runtime, with a control overlay configured by persisted user settings.
//
// Usage:
//
//	ludens run [game.js]        - Play a game with the terminal control overlay
//	ludens script <action>      - Print the script an action would send
//	ludens settings <command>   - Show or change the persisted settings
//	ludens history              - Browse settings snapshots (sqlite backend)
//	ludens serve                - Serve the overlay over SSH
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search order)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yoimerdr/ludens-sub001/internal/config"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
	"github.com/yoimerdr/ludens-sub001/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// Loaded by the root command before any subcommand runs.
var (
	app     config.App
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ludens",
	Short: "Ludens - Drive hosted web games from your terminal",
	Long: `Ludens hosts a web game's script in an embedded JavaScript runtime and
drives it with a virtual controller: a joystick, face and shoulder buttons,
graphics keys and quick audio/FPS toggles.

Available commands:
  run       - Play a game with the terminal control overlay
  script    - Print the script a control action sends
  settings  - Show or change the persisted settings
  history   - Browse settings snapshots
  serve     - Serve the overlay over SSH

Examples:
  ludens run
  ludens run ./game.js
  ludens script move up right
  ludens settings alpha 0.4
  ludens serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadApp(flagConfig)
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		app = cfg

		l, err := newLogger(cfg.Log.Level, flagLogFile)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the process logger. An empty path logs to stderr.
func newLogger(level, path string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ludens",
		Level:           lvl,
	}), nil
}

// quietLogger returns the logger to use while a full-screen program owns
// the terminal. Without a log file, output is dropped.
func quietLogger() *log.Logger {
	if logFile != nil {
		return logger
	}
	return log.New(io.Discard)
}

// openRepository opens the configured settings backend. The returned
// function releases it.
func openRepository(ctx context.Context, l *log.Logger) (*settings.Repository, *storage.Store, func(), error) {
	opts := []settings.Option{
		settings.WithLogger(l),
		settings.WithDefaults(settings.Defaults(app.System.Locale)),
	}

	switch app.Settings.Backend {
	case config.BackendSQLite:
		store, err := storage.Open(app.Settings.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		closer := func() {
			if app.Settings.Keep > 0 {
				if n, err := store.Prune(context.Background(), app.Settings.Keep); err != nil {
					l.Warn("cannot prune settings history", "error", err)
				} else if n > 0 {
					l.Debug("pruned settings history", "removed", n)
				}
			}
			store.Close()
		}
		return settings.Open(ctx, store, opts...), store, closer, nil

	default:
		backend, err := settings.NewFileBackend(app.Settings.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return settings.Open(ctx, backend, opts...), nil, func() {}, nil
	}
}
