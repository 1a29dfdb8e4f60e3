package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yoimerdr/ludens-sub001/internal/settings"
)

// cellStyle selects how a canvas cell is drawn.
type cellStyle int

const (
	styleDefault cellStyle = iota
	styleItem
	styleFaint
	styleActive
	styleTitle
	styleMuted
	styleOn
)

// cellStyles maps cellStyle to lipgloss styles.
var cellStyles = map[cellStyle]lipgloss.Style{
	styleDefault: lipgloss.NewStyle(),
	styleItem:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	styleFaint:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
	styleActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	styleTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	styleMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	styleOn:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

// faintBelow is the item opacity under which an item is drawn faint.
const faintBelow = 0.5

type cell struct {
	r     rune
	style cellStyle
}

// canvas is a fixed-size grid of styled runes.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

// put writes s at (x, y). Cells outside the canvas are dropped.
func (c *canvas) put(x, y int, s string, style cellStyle) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if x >= 0 && x < c.w {
			c.cells[y*c.w+x] = cell{r: r, style: style}
		}
		x++
	}
}

// String renders the canvas. Adjacent cells with the same style share one
// escape sequence.
func (c *canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.w*c.h*2 + c.h)

	for y := range c.h {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.w {
			start := c.cells[y*c.w+x].style

			var run strings.Builder
			for x < c.w {
				cl := c.cells[y*c.w+x]
				if cl.style != start {
					break
				}
				run.WriteRune(cl.r)
				x++
			}

			style, ok := cellStyles[start]
			if !ok {
				style = cellStyles[styleDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// itemStyle picks the style of an overlay item, or false when the item is
// hidden.
func itemStyle(cs settings.ControlSettings, t settings.ControlType, active bool) (cellStyle, bool) {
	if !cs.Visible(t) {
		return 0, false
	}
	if active {
		return styleActive, true
	}
	if cs.ItemAlpha(t).Float() < faintBelow {
		return styleFaint, true
	}
	return styleItem, true
}

// anchor converts a settings position into the top-left cell of a block of
// size w x h centred on it, kept inside the canvas.
func anchor(p settings.PositionableItem, cw, ch, w, h int) (int, int) {
	x := int(p.X*float64(cw)) - w/2
	y := int(p.Y*float64(ch)) - h/2
	x = max(0, min(x, cw-w))
	y = max(0, min(y, ch-h))
	return x, y
}

// buttonLabel is the text drawn for each button.
var buttonLabel = map[settings.ControlType]string{
	settings.ControlA:      "(A)",
	settings.ControlB:      "(B)",
	settings.ControlX:      "(X)",
	settings.ControlY:      "(Y)",
	settings.ControlL:      "[L]",
	settings.ControlR:      "[R]",
	settings.ControlStart:  "START",
	settings.ControlSelect: "SELECT",
}

// buttonCells places each button inside the buttons block.
var buttonCells = []struct {
	t    settings.ControlType
	x, y int
}{
	{settings.ControlL, 0, 0},
	{settings.ControlR, 11, 0},
	{settings.ControlY, 4, 1},
	{settings.ControlX, 8, 1},
	{settings.ControlB, 2, 2},
	{settings.ControlA, 10, 2},
	{settings.ControlSelect, 0, 3},
	{settings.ControlStart, 9, 3},
}

const (
	buttonsW  = 14
	buttonsH  = 4
	joystickW = 5
	joystickH = 3
)

// renderJoystick draws the d-pad with the held directions highlighted.
func renderJoystick(c *canvas, x, y int, style cellStyle, held map[string]bool) {
	glyph := func(name, r string) {
		s := style
		if held[name] {
			s = styleActive
		}
		switch name {
		case "up":
			c.put(x+2, y, r, s)
		case "down":
			c.put(x+2, y+2, r, s)
		case "left":
			c.put(x, y+1, r, s)
		case "right":
			c.put(x+4, y+1, r, s)
		}
	}
	glyph("up", "^")
	glyph("left", "<")
	glyph("right", ">")
	glyph("down", "v")
	c.put(x+2, y+1, "o", style)
}
