package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited character
type Cell struct {
	Rune  rune
	Style tcell.Style
}
