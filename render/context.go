package render

import (
	"github.com/lixenwraith/spell-smash/game"
	"github.com/lixenwraith/spell-smash/parameter"
)

// hudRows is the number of terminal rows reserved above the playfield
const hudRows = 2

// RenderContext provides frame state for layers, passed by value
type RenderContext struct {
	View    game.View
	Palette Palette

	// Terminal dimensions
	Width  int
	Height int

	// Playfield origin row and world-to-cell scale
	Top    int
	ScaleX float64
	ScaleY float64
}

// NewRenderContext maps one viewport of world pixels onto the terminal below the HUD
func NewRenderContext(v game.View, width, height int, p Palette) RenderContext {
	field := max(1, height-hudRows)
	return RenderContext{
		View:    v,
		Palette: p,
		Width:   width,
		Height:  height,
		Top:     hudRows,
		ScaleX:  float64(width) / parameter.ScreenWidth,
		ScaleY:  float64(field) / parameter.ScreenHeight,
	}
}

// Project converts a world point to a cell, applying the camera pan
func (c RenderContext) Project(x, y float64) (int, int) {
	cx := int((x - c.View.Camera) * c.ScaleX)
	cy := c.Top + int(y*c.ScaleY)
	return cx, cy
}

// ProjectRect returns the cell rectangle covered by a centered world box, at least one cell
func (c RenderContext) ProjectRect(r game.Rect) (x, y, w, h int) {
	x0, y0 := c.Project(r.X-r.W/2, r.Y-r.H/2)
	x1, y1 := c.Project(r.X+r.W/2, r.Y+r.H/2)
	return x0, y0, max(1, x1-x0), max(1, y1-y0)
}
