package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the persisted settings",
	Long: `Inspect and change the persisted user settings. Every change is saved
immediately.

Examples:
  ludens settings show
  ludens settings alpha 0.4
  ludens settings alpha 0.2 a
  ludens settings toggle overlay
  ludens settings toggle select
  ludens settings move buttons 0.8 0.7
  ludens settings bind start 32
  ludens settings mute on
  ludens settings fps off
  ludens settings locale es
  ludens settings reset`,
}

func init() {
	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings as YAML",
			Args:  cobra.NoArgs,
			Run:   withRepository(showSettings),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the factory settings",
			Args:  cobra.NoArgs,
			Run: withRepository(func(ctx context.Context, r *settings.Repository, _ []string) error {
				return r.Reset(ctx)
			}),
		},
		&cobra.Command{
			Use:   "alpha <value> [control]",
			Short: "Set the opacity of the overlay or of one control",
			Args:  cobra.RangeArgs(1, 2),
			Run:   withRepository(setAlpha),
		},
		&cobra.Command{
			Use:   "toggle <overlay|control>",
			Short: "Show or hide the overlay or one control",
			Args:  cobra.ExactArgs(1),
			Run:   withRepository(toggle),
		},
		&cobra.Command{
			Use:   "move <joystick|buttons|dock> <x> <y>",
			Short: "Place a control group, as fractions of the screen",
			Args:  cobra.ExactArgs(3),
			Run:   withRepository(move),
		},
		&cobra.Command{
			Use:   "bind <control> <code>",
			Short: "Bind a control to a key code",
			Args:  cobra.ExactArgs(2),
			Run:   withRepository(bind),
		},
		&cobra.Command{
			Use:   "mute <on|off>",
			Short: "Store the mute toggle",
			Args:  cobra.ExactArgs(1),
			Run: withRepository(func(ctx context.Context, r *settings.Repository, args []string) error {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				return r.SetMuted(ctx, on)
			}),
		},
		&cobra.Command{
			Use:   "fps <on|off>",
			Short: "Store the FPS overlay toggle",
			Args:  cobra.ExactArgs(1),
			Run: withRepository(func(ctx context.Context, r *settings.Repository, args []string) error {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				return r.SetShowFPS(ctx, on)
			}),
		},
		&cobra.Command{
			Use:   "locale <tag>",
			Short: "Store the interface locale",
			Args:  cobra.ExactArgs(1),
			Run: withRepository(func(ctx context.Context, r *settings.Repository, args []string) error {
				return r.SetLocale(ctx, args[0])
			}),
		},
	)
}

// withRepository opens the settings repository around fn and reports its
// error.
func withRepository(fn func(ctx context.Context, r *settings.Repository, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		repo, _, closeRepo, err := openRepository(ctx, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening settings: %v\n", err)
			os.Exit(1)
		}

		err = fn(ctx, repo, args)
		closeRepo()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func showSettings(_ context.Context, r *settings.Repository, _ []string) error {
	out, err := yaml.Marshal(r.Current())
	if err != nil {
		return fmt.Errorf("cannot render settings: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func setAlpha(ctx context.Context, r *settings.Repository, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid alpha %q: %w", args[0], err)
	}
	alpha, err := settings.NewAlpha(v)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return r.SetControlsAlpha(ctx, alpha)
	}
	t, err := settings.ParseControlType(args[1])
	if err != nil {
		return err
	}
	return r.SetItemAlpha(ctx, t, alpha)
}

func toggle(ctx context.Context, r *settings.Repository, args []string) error {
	cur := r.Current()
	if args[0] == "overlay" {
		return r.SetControlsEnabled(ctx, !cur.Controls.Enabled)
	}

	t, err := settings.ParseControlType(args[0])
	if err != nil {
		return err
	}
	it, _ := cur.Controls.Item(t)
	return r.SetItemEnabled(ctx, t, !it.Enabled)
}

func move(ctx context.Context, r *settings.Repository, args []string) error {
	t, err := settings.ParsePositionType(args[0])
	if err != nil {
		return err
	}
	x, err := parseFraction(args[1])
	if err != nil {
		return err
	}
	y, err := parseFraction(args[2])
	if err != nil {
		return err
	}
	return r.MoveItem(ctx, t, x, y)
}

func bind(ctx context.Context, r *settings.Repository, args []string) error {
	t, err := settings.ParseControlType(args[0])
	if err != nil {
		return err
	}
	code, err := strconv.Atoi(args[1])
	if err != nil || code < 0 {
		return fmt.Errorf("invalid key code %q", args[1])
	}
	return r.SetItemCode(ctx, t, code)
}

func parseFraction(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("position %q must be between 0 and 1", s)
	}
	return v, nil
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
