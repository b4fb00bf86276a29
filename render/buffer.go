package render

import (
	"github.com/gdamore/tcell/v2"
)

// RenderBuffer is a cell compositor flushed to a tcell surface once per frame
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
	blank  tcell.Style
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int, blank tcell.Style) *RenderBuffer {
	b := &RenderBuffer{blank: blank}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := max(0, width*height)
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blank using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Style: b.blank}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Bounds returns buffer dimensions
func (b *RenderBuffer) Bounds() (int, int) {
	return b.width, b.height
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes one cell, out of bounds writes are dropped
func (b *RenderBuffer) Set(x, y int, r rune, style tcell.Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at x, y or a blank cell out of bounds
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{Rune: ' ', Style: b.blank}
	}
	return b.cells[y*b.width+x]
}

// Fill paints a rectangle of cells
func (b *RenderBuffer) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, r, style)
		}
	}
}

// SetString writes text left to right and returns the column after it
func (b *RenderBuffer) SetString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		b.Set(x, y, r, style)
		x++
	}
	return x
}

// Row returns the runes of one row, used by tests and the layout preview
func (b *RenderBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, b.width)
	for x := 0; x < b.width; x++ {
		out[x] = b.cells[y*b.width+x].Rune
	}
	return string(out)
}

// Flush writes the buffer to the surface and shows it
func (b *RenderBuffer) Flush(s Surface) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			s.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	s.Show()
}
