package input

import (
	"unicode"

	"github.com/lixenwraith/spell-smash/event"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Word entry
	IntentLetter    // Printable letter
	IntentBackspace // Backspace
	IntentSubmit    // Enter
	IntentHearAgain // Tab

	// Session control
	IntentRestart    // Ctrl+R
	IntentRebuild    // Ctrl+B
	IntentPause      // Ctrl+P
	IntentToggleWord // '?' toggles audio-only presentation
	IntentQuit       // Escape, Ctrl+C
)

// Intent is a resolved key press
type Intent struct {
	Type IntentType
	Rune rune
}

// keyIntents binds non-rune keys
var keyIntents = map[event.Key]IntentType{
	event.KeyBackspace: IntentBackspace,
	event.KeyEnter:     IntentSubmit,
	event.KeyTab:       IntentHearAgain,
	event.KeyCtrlR:     IntentRestart,
	event.KeyCtrlB:     IntentRebuild,
	event.KeyCtrlP:     IntentPause,
	event.KeyEscape:    IntentQuit,
}

// Resolve maps a key press to an intent
// Letters are folded to lower case, other runes are ignored
func Resolve(k event.KeyPayload) Intent {
	if k.Key != event.KeyRune {
		return Intent{Type: keyIntents[k.Key]}
	}
	switch {
	case k.Rune == '?':
		return Intent{Type: IntentToggleWord}
	case unicode.IsLetter(k.Rune):
		return Intent{Type: IntentLetter, Rune: unicode.ToLower(k.Rune)}
	}
	return Intent{}
}
