// Package renderer draws ecosystem frames to a raylib window or a terminal.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/ecosystem"
)

// Palette holds the colors of the window renderer.
type Palette struct {
	Background rl.Color
	Prey       rl.Color
	Predator   rl.Color
	Food       rl.Color
}

// DefaultPalette returns the default colors: green prey, red predators.
func DefaultPalette() Palette {
	return Palette{
		Background: rl.Black,
		Prey:       rl.Color{R: 0, G: 255, B: 0, A: 255},
		Predator:   rl.Color{R: 255, G: 0, B: 0, A: 255},
		Food:       rl.Color{R: 230, G: 200, B: 60, A: 255},
	}
}

// Window renders frames into a raylib window, scaling world units to pixels.
type Window struct {
	screenW, screenH int32
	scaleX, scaleY   float32
	palette          Palette
}

// NewWindow creates a window renderer for a world of worldW x worldH units
// shown on a screenW x screenH pixel window.
func NewWindow(worldW, worldH, screenW, screenH int) *Window {
	return &Window{
		screenW: int32(screenW),
		screenH: int32(screenH),
		scaleX:  float32(screenW) / float32(worldW),
		scaleY:  float32(screenH) / float32(worldH),
		palette: DefaultPalette(),
	}
}

// Open creates the raylib window.
func (w *Window) Open(title string, targetFPS int) {
	rl.InitWindow(w.screenW, w.screenH, title)
	if targetFPS > 0 {
		rl.SetTargetFPS(int32(targetFPS))
	}
}

// Close closes the raylib window.
func (w *Window) Close() {
	rl.CloseWindow()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Size returns the window size in pixels.
func (w *Window) Size() (int32, int32) {
	return w.screenW, w.screenH
}

// Begin starts a frame and clears the screen.
func (w *Window) Begin() {
	rl.BeginDrawing()
	rl.ClearBackground(w.palette.Background)
}

// End presents the frame.
func (w *Window) End() {
	rl.EndDrawing()
}

// DrawFrame draws food sites and agents. Agents are circles of their
// current size; food sites are circles of the configured radius.
func (w *Window) DrawFrame(f ecosystem.Frame) {
	for _, food := range f.Food {
		rl.DrawCircle(w.px(food.X), w.py(food.Y), w.scale(food.Radius), w.palette.Food)
	}

	for _, a := range f.Agents {
		color := w.palette.Prey
		if a.Kind == components.KindPredator {
			color = w.palette.Predator
		}
		rl.DrawCircleLines(w.px(a.X), w.py(a.Y), w.scale(a.Size), color)
	}
}

func (w *Window) px(x int) int32 {
	return int32(float32(x) * w.scaleX)
}

func (w *Window) py(y int) int32 {
	return int32(float32(y) * w.scaleY)
}

func (w *Window) scale(r int) float32 {
	return float32(r) * min(w.scaleX, w.scaleY)
}
