package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// DetectColorMode determines terminal color capability from the process environment
func DetectColorMode() ColorMode {
	return DetectColorModeFrom(os.Getenv)
}

// DetectColorModeFrom determines color capability from an environment lookup
func DetectColorModeFrom(getenv func(string) string) ColorMode {
	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if getenv("KITTY_WINDOW_ID") != "" ||
		getenv("KONSOLE_VERSION") != "" ||
		getenv("ITERM_SESSION_ID") != "" ||
		getenv("ALACRITTY_WINDOW_ID") != "" ||
		getenv("ALACRITTY_LOG") != "" ||
		getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
