package terminal

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spell-smash/event"
)

// Poll reads screen events until ctx is done or the screen is finalized
// Key presses are pushed to the queue, resizes resync the screen
func Poll(ctx context.Context, screen tcell.Screen, queue *event.EventQueue) {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if p, ok := TranslateKey(ev); ok {
				queue.Emit(event.EventKey, &p)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
