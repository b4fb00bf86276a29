package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spell-smash/terminal"
)

// Palette holds the styles of every drawn element
type Palette struct {
	Background  tcell.Style
	Sky         tcell.Style
	Ground      tcell.Style
	Pedestal    tcell.Style
	Block       tcell.Style
	Letter      tcell.Style
	LetterFire  tcell.Style
	LetterSuper tcell.Style
	Rubble      tcell.Style
	Aim         tcell.Style
	Impact      tcell.Style
	HUD         tcell.Style
	HUDValue    tcell.Style
	Word        tcell.Style
	Hint        tcell.Style
	Wrong       tcell.Style
	Banner      tcell.Style
}

// Tokyo Night base colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbGround     = tcell.NewRGBColor(86, 95, 137)
	RgbPedestal   = tcell.NewRGBColor(65, 72, 104)
	RgbBlock      = tcell.NewRGBColor(224, 175, 104)
	RgbLetter     = tcell.NewRGBColor(192, 202, 245)
	RgbFire       = tcell.NewRGBColor(255, 158, 100)
	RgbSuper      = tcell.NewRGBColor(247, 118, 142)
	RgbRubble     = tcell.NewRGBColor(86, 95, 137)
	RgbAim        = tcell.NewRGBColor(125, 207, 255)
	RgbImpact     = tcell.NewRGBColor(255, 255, 0)
	RgbHUD        = tcell.NewRGBColor(169, 177, 214)
	RgbHUDValue   = tcell.NewRGBColor(255, 255, 255)
	RgbWord       = tcell.NewRGBColor(158, 206, 106)
	RgbWrong      = tcell.NewRGBColor(255, 0, 0)
)

// NewPalette selects styles for the detected color capability
// The 256 palette uses named colors so terminals without truecolor keep the contrast
func NewPalette(mode terminal.ColorMode) Palette {
	if mode == terminal.ColorModeTrueColor {
		return paletteFrom(RgbBackground, map[string]tcell.Color{
			"ground": RgbGround, "pedestal": RgbPedestal, "block": RgbBlock,
			"letter": RgbLetter, "fire": RgbFire, "super": RgbSuper, "rubble": RgbRubble,
			"aim": RgbAim, "impact": RgbImpact, "hud": RgbHUD, "value": RgbHUDValue,
			"word": RgbWord, "wrong": RgbWrong,
		})
	}
	return paletteFrom(tcell.ColorBlack, map[string]tcell.Color{
		"ground": tcell.ColorSlateGray, "pedestal": tcell.ColorDimGray, "block": tcell.ColorOrange,
		"letter": tcell.ColorWhite, "fire": tcell.ColorDarkOrange, "super": tcell.ColorHotPink,
		"rubble": tcell.ColorGray, "aim": tcell.ColorAqua, "impact": tcell.ColorYellow,
		"hud": tcell.ColorSilver, "value": tcell.ColorWhite, "word": tcell.ColorGreen,
		"wrong": tcell.ColorRed,
	})
}

func paletteFrom(bg tcell.Color, c map[string]tcell.Color) Palette {
	base := tcell.StyleDefault.Background(bg)
	fg := func(name string) tcell.Style { return base.Foreground(c[name]) }
	return Palette{
		Background:  base,
		Sky:         base,
		Ground:      fg("ground"),
		Pedestal:    fg("pedestal"),
		Block:       fg("block"),
		Letter:      fg("letter").Bold(true),
		LetterFire:  fg("fire").Bold(true),
		LetterSuper: fg("super").Bold(true),
		Rubble:      fg("rubble").Dim(true),
		Aim:         fg("aim"),
		Impact:      fg("impact").Bold(true),
		HUD:         fg("hud"),
		HUDValue:    fg("value").Bold(true),
		Word:        fg("word").Bold(true),
		Hint:        fg("hud").Italic(true),
		Wrong:       fg("wrong").Bold(true),
		Banner:      base.Foreground(bg).Background(c["word"]).Bold(true),
	}
}
