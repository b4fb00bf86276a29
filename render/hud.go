package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spell-smash/projectile"
)

// HUDLayer draws the statistics rows above the playfield
type HUDLayer struct{}

func (HUDLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	v := ctx.View
	p := ctx.Palette

	x := 1
	field := func(label string, value string) {
		x = buf.SetString(x, 0, label+" ", p.HUD)
		x = buf.SetString(x, 0, value, p.HUDValue)
		x += 3
	}
	field("Building", fmt.Sprintf("%d/%d", min(v.Building+1, v.Length), v.Length))
	field("Streak", fmt.Sprintf("%d (best %d)", v.Streak, v.BestStreak))
	field("Words", fmt.Sprintf("%d", v.Words))
	field("Perfect", fmt.Sprintf("%d", v.Perfect))
	field("Accuracy", fmt.Sprintf("%d%%", v.Accuracy))
	field("Destroyed", fmt.Sprintf("%d%%", v.Destruction))

	switch v.Power {
	case projectile.PowerFire:
		buf.SetString(1, 1, " ON FIRE ", p.LetterFire.Reverse(true))
	case projectile.PowerSuper:
		buf.SetString(1, 1, " SUPER ", p.LetterSuper.Reverse(true))
	}
	if !v.ShowWord {
		buf.SetString(12, 1, "audio only", p.Hint)
	}
	phase := strings.ToLower(v.Phase)
	buf.SetString(ctx.Width-len(phase)-1, 1, phase, p.HUD)
}

// OverlayLayer draws the word, hint, typed text, feedback and the final summary
type OverlayLayer struct{}

func (OverlayLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	v := ctx.View
	p := ctx.Palette
	row := ctx.Top + 1

	center := func(y int, s string, style tcell.Style) {
		buf.SetString((ctx.Width-len([]rune(s)))/2, y, s, style)
	}

	if v.Finished {
		lines := []string{
			" All buildings down! ",
			fmt.Sprintf("Buildings %d   Words %d   Perfect %d", v.Building, v.Words, v.Perfect),
			fmt.Sprintf("Wrong attempts %d   Best streak %d   Accuracy %d%%", v.Wrong, v.BestStreak, v.Accuracy),
			"Ctrl+R to play again, Esc to quit",
		}
		top := ctx.Height/2 - len(lines)/2
		center(top, lines[0], p.Banner)
		for i, l := range lines[1:] {
			center(top+1+i, l, p.HUDValue)
		}
		return
	}

	if v.Word != "" {
		center(row, strings.ToUpper(v.Word), p.Word)
	}
	if v.Hint != "" {
		center(row+1, "starts with: "+v.Hint, p.Hint)
	}
	if v.InputOpen {
		center(row+2, "> "+v.Typed+"_", p.HUDValue)
		center(ctx.Height-1, "Enter launch   Tab hear again   ? audio only   Ctrl+P pause", p.HUD)
	}
	if v.WrongShown {
		center(row+3, "Try again!", p.Wrong)
	}
}
