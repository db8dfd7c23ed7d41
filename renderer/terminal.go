package renderer

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/ecosystem"
)

// Terminal renders frames as characters in a terminal, one cell per block
// of world units. The bottom row holds a status line.
type Terminal struct {
	screen         tcell.Screen
	width, height  int
	worldW, worldH int

	stop atomic.Bool

	foodStyle tcell.Style
	preyStyle tcell.Style
	predStyle tcell.Style
	textStyle tcell.Style
}

// NewTerminal initializes the terminal screen and starts polling for keys.
// Escape, Ctrl-C or q request a stop.
func NewTerminal(worldW, worldH int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	t := &Terminal{
		screen:    screen,
		worldW:    worldW,
		worldH:    worldH,
		foodStyle: tcell.StyleDefault.Foreground(tcell.ColorYellow),
		preyStyle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		predStyle: tcell.StyleDefault.Foreground(tcell.ColorRed),
		textStyle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
	t.width, t.height = screen.Size()

	go t.pollEvents()
	return t, nil
}

// pollEvents runs until the screen is finalized.
func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				t.stop.Store(true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// StopRequested reports whether the user pressed a quit key.
func (t *Terminal) StopRequested() bool {
	return t.stop.Load()
}

// Draw renders one frame with a status line.
func (t *Terminal) Draw(f ecosystem.Frame, status string) {
	t.width, t.height = t.screen.Size()
	t.screen.Clear()

	for _, food := range f.Food {
		t.set(food.X, food.Y, '.', t.foodStyle)
	}
	// Predators last so they stay visible over prey
	for _, a := range f.Agents {
		if a.Kind == components.KindPrey {
			t.set(a.X, a.Y, 'o', t.preyStyle)
		}
	}
	for _, a := range f.Agents {
		if a.Kind == components.KindPredator {
			t.set(a.X, a.Y, 'X', t.predStyle)
		}
	}

	for i, r := range []rune(status) {
		if i >= t.width {
			break
		}
		t.screen.SetContent(i, t.height-1, r, nil, t.textStyle)
	}

	t.screen.Show()
}

// set maps world coordinates to a cell above the status line.
func (t *Terminal) set(x, y int, r rune, style tcell.Style) {
	rows := t.height - 1
	if t.width <= 0 || rows <= 0 {
		return
	}
	cx, cy := CellOf(x, y, t.worldW, t.worldH, t.width, rows)
	t.screen.SetContent(cx, cy, r, nil, style)
}

// CellOf maps a world position onto a cols x rows grid, clamping positions
// on the far border into the last cell.
func CellOf(x, y, worldW, worldH, cols, rows int) (int, int) {
	cx := x * cols / max(worldW, 1)
	cy := y * rows / max(worldH, 1)
	return min(max(cx, 0), cols-1), min(max(cy, 0), rows-1)
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
