package render

import "github.com/gdamore/tcell/v2"

// Layer is one stage of the frame, drawn in priority order
type Layer interface {
	Render(ctx RenderContext, buf *RenderBuffer)
}

// Surface is the part of tcell.Screen the renderer writes to
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}
