package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Open initializes a tcell screen for full-screen play
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := Setup(screen); err != nil {
		return nil, err
	}
	return screen, nil
}

// Setup initializes an existing screen, used with simulation screens in tests
func Setup(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()
	return nil
}
