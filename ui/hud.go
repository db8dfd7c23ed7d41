package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Generation  int // 0-based
	Generations int
	Individual  int // 0-based
	Population  int
	BestScore   int // best score of the previous generation, -1 if none
	Tick        int
	Second      int
	PreyCount   int
	PredCount   int
	FPS         int32
}

// hudSections describes the HUD panel.
var hudSections = []SectionDescriptor{
	{
		Title: "Search",
		Fields: []FieldDescriptor{
			{Label: "Generation", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(HUDData)
				return fmt.Sprintf("%d/%d", h.Generation+1, h.Generations)
			}},
			{Label: "Individual", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(HUDData)
				return fmt.Sprintf("%d/%d", h.Individual+1, h.Population)
			}},
			{Label: "Best", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%ds", d.(HUDData).BestScore)
			}, Visible: func(d any) bool { return d.(HUDData).BestScore >= 0 }},
		},
	},
	{
		Title: "Run",
		Fields: []FieldDescriptor{
			{Label: "Tick", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d", d.(HUDData).Tick)
			}},
			{Label: "Survived", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%ds", d.(HUDData).Second)
			}},
			{Label: "Prey", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d", d.(HUDData).PreyCount)
			}},
			{Label: "Predators", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d", d.(HUDData).PredCount)
			}},
			{Label: "Prey share", Widget: WidgetBar, Getter: func(d any) float32 {
				h := d.(HUDData)
				total := h.PreyCount + h.PredCount
				if total == 0 {
					return 0
				}
				return float32(h.PreyCount) / float32(total)
			}},
			{Label: "FPS", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(d.(HUDData).FPS)
			}},
		},
	},
}

// HUD renders the main heads-up display and the stop button.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	stop     bool
}

// NewHUD creates a new HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    220,
	}
}

// Draw renders the HUD panel and the stop button.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 30 + padding
	for _, sd := range hudSections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(h.x, h.y, h.width, height)

	y := h.y + padding
	rl.DrawText(data.Title, h.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	inner := h.width - padding*2
	for _, sd := range hudSections {
		y = r.DrawSection(h.x+padding, y, sd, data, inner)
	}

	btn := rl.Rectangle{X: float32(h.x + padding), Y: float32(y), Width: float32(inner), Height: 30}
	if gui.Button(btn, "Stop") {
		h.stop = true
	}
}

// StopRequested reports whether the stop button was pressed.
func (h *HUD) StopRequested() bool {
	return h.stop
}
