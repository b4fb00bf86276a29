package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spell-smash/event"
)

// specialKeys maps tcell keys to session keys
var specialKeys = map[tcell.Key]event.Key{
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyCtrlR:      event.KeyCtrlR,
	tcell.KeyCtrlB:      event.KeyCtrlB,
	tcell.KeyCtrlP:      event.KeyCtrlP,
	tcell.KeyCtrlC:      event.KeyEscape,
}

var ctrlRunes = map[rune]event.Key{
	'r': event.KeyCtrlR,
	'b': event.KeyCtrlB,
	'p': event.KeyCtrlP,
	'c': event.KeyEscape,
}

// TranslateKey converts a tcell key press, false for keys the session ignores
func TranslateKey(ev *tcell.EventKey) (event.KeyPayload, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		// Some terminals report Ctrl+letter as a modified rune
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if k, ok := ctrlRunes[r]; ok {
				return event.KeyPayload{Key: k}, true
			}
			return event.KeyPayload{}, false
		}
		if r < ' ' {
			return event.KeyPayload{}, false
		}
		return event.KeyPayload{Key: event.KeyRune, Rune: r}, true
	}
	if k, ok := specialKeys[ev.Key()]; ok {
		return event.KeyPayload{Key: k}, true
	}
	return event.KeyPayload{}, false
}
