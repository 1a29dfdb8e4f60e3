package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yoimerdr/ludens-sub001/internal/keyevent"
	"github.com/yoimerdr/ludens-sub001/internal/player"
	"github.com/yoimerdr/ludens-sub001/internal/scripthost"
	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

var flagHold bool

var scriptCmd = &cobra.Command{
	Use:   "script <action> [args]",
	Short: "Print the script a control action sends",
	Long: `Print the exact scripts a control action sends to the game, without
running anything.

Actions:
  move [up|down|left|right]...   - Hold a direction set (empty releases all)
  release                         - Release every direction
  joystick <dx> <dy>              - Move the virtual joystick by a vector
  tap <control|code>              - Tap a button (down, then auto-release)
  press <control|code>            - Hold a button down (or tap with --hold=false)
  keyup <control|code>            - Release a button
  graphics <f2|f3|f4|code>        - Send a graphics key
  mute | unmute                   - Audio commands
  volume <0-100>                  - Set the master volume
  fps <show|hide|toggle>          - FPS overlay commands

Controls are a, b, x, y, l, r, start and select, bound to their
configured key codes.

Examples:
  ludens script move up right
  ludens script tap a
  ludens script press 13
  ludens script joystick 0.7 -0.7`,
	Args: cobra.MinimumNArgs(1),
	Run:  runScript,
}

func init() {
	scriptCmd.Flags().BoolVar(&flagHold, "hold", true, "press: keep the key down instead of tapping")
}

func runScript(cmd *cobra.Command, args []string) {
	rec := scripthost.NewRecorder()
	cfg := controlsConfig()
	cfg.Logger = logger
	controls := player.NewControls(rec, cfg)

	codes, err := boundCodes(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := dispatch(controls, codes, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, s := range rec.Scripts() {
		fmt.Println(s)
	}
}

// boundCodes reads the key code of every control from the stored settings.
func boundCodes(cmd *cobra.Command) (map[settings.ControlType]int, error) {
	repo, _, closeRepo, err := openRepository(cmd.Context(), logger)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	codes := make(map[settings.ControlType]int)
	for _, it := range repo.Current().Controls.Items {
		codes[it.Type] = it.Code
	}
	return codes, nil
}

// dispatch runs one script action against controls.
func dispatch(c *player.Controls, codes map[settings.ControlType]int, action string, args []string) error {
	switch action {
	case "move":
		dirs := make([]keyevent.Direction, 0, len(args))
		for _, a := range args {
			d, ok := keyevent.ParseDirection(a)
			if !ok {
				return fmt.Errorf("unknown direction %q", a)
			}
			dirs = append(dirs, d)
		}
		c.Movements.Move(dirs, len(dirs) > 0)

	case "release":
		c.Movements.Release()

	case "joystick":
		if len(args) != 2 {
			return fmt.Errorf("joystick needs <dx> <dy>")
		}
		dx, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid dx: %w", err)
		}
		dy, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid dy: %w", err)
		}
		dirs := player.Resolve(dx, dy, 0.2)
		c.Movements.Move(dirs, len(dirs) > 0)

	case "tap", "press", "keyup":
		if len(args) != 1 {
			return fmt.Errorf("%s needs a control or key code", action)
		}
		code, err := keyCode(codes, args[0])
		if err != nil {
			return err
		}
		switch action {
		case "tap":
			c.Buttons.Tap(code)
		case "press":
			c.Buttons.Input(code, flagHold)
		default:
			c.Buttons.Release(code)
		}

	case "graphics":
		if len(args) != 1 {
			return fmt.Errorf("graphics needs f2, f3, f4 or a key code")
		}
		code, err := graphicsCode(args[0])
		if err != nil {
			return err
		}
		c.Graphics.Input(code, true)

	case "mute":
		c.Audio.Mute()

	case "unmute":
		c.Audio.Unmute()

	case "volume":
		if len(args) != 1 {
			return fmt.Errorf("volume needs a value")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid volume: %w", err)
		}
		vol, err := player.NewVolume(v)
		if err != nil {
			return err
		}
		c.Audio.SetVolume(vol)

	case "fps":
		if len(args) != 1 {
			return fmt.Errorf("fps needs show, hide or toggle")
		}
		switch args[0] {
		case "show":
			c.FPS.Show()
		case "hide":
			c.FPS.Hide()
		case "toggle":
			c.FPS.Toggle()
		default:
			return fmt.Errorf("unknown fps command %q", args[0])
		}

	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// keyCode accepts a control name or a numeric key code.
func keyCode(codes map[settings.ControlType]int, arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return n, nil
	}
	t, err := settings.ParseControlType(arg)
	if err != nil {
		return 0, err
	}
	code := codes[t]
	if code == 0 {
		return 0, fmt.Errorf("control %s has no key code", t)
	}
	return code, nil
}

func graphicsCode(arg string) (int, error) {
	switch strings.ToLower(arg) {
	case "f2":
		return keyevent.CodeF2, nil
	case "f3":
		return keyevent.CodeF3, nil
	case "f4":
		return keyevent.CodeF4, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("unknown graphics key %q", arg)
	}
	return n, nil
}
