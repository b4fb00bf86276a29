package terminal

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spell-smash/event"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want ColorMode
	}{
		{"colorterm", map[string]string{"COLORTERM": "truecolor"}, ColorModeTrueColor},
		{"24bit", map[string]string{"COLORTERM": "24bit"}, ColorModeTrueColor},
		{"kitty", map[string]string{"KITTY_WINDOW_ID": "1"}, ColorModeTrueColor},
		{"term direct", map[string]string{"TERM": "xterm-Direct"}, ColorModeTrueColor},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, ColorMode256},
		{"empty", map[string]string{}, ColorMode256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectColorModeFrom(env(tt.vars)))
		})
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want event.KeyPayload
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), event.KeyPayload{Key: event.KeyRune, Rune: 'a'}, true},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), event.KeyPayload{Key: event.KeyRune, Rune: 'Q'}, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.KeyPayload{Key: event.KeyEnter}, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), event.KeyPayload{Key: event.KeyBackspace}, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), event.KeyPayload{Key: event.KeyTab}, true},
		{"restart", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), event.KeyPayload{Key: event.KeyCtrlR}, true},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModCtrl), event.KeyPayload{Key: event.KeyCtrlB}, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.KeyPayload{Key: event.KeyEscape}, true},
		{"arrow ignored", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), event.KeyPayload{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPollPushesKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, Setup(screen))
	queue := event.NewEventQueue()

	done := make(chan struct{})
	go func() {
		Poll(context.Background(), screen, queue)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'c', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	var got []event.GameEvent
	require.Eventually(t, func() bool {
		got = append(got, queue.Consume()...)
		return len(got) >= 2
	}, time.Second, 5*time.Millisecond)

	screen.Fini()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll did not return after Fini")
	}

	require.Len(t, got, 2)
	assert.Equal(t, event.EventKey, got[0].Type)
	assert.Equal(t, &event.KeyPayload{Key: event.KeyRune, Rune: 'c'}, got[0].Payload)
	assert.Equal(t, &event.KeyPayload{Key: event.KeyEnter}, got[1].Payload)
}

func TestEmergencyResetWrites(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	assert.Contains(t, buf.String(), "\x1b[?25h")
	assert.Contains(t, buf.String(), "\x1b[?1049l")
}
