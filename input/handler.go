package input

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/event"
)

// Controller is the session surface driven by the keyboard
type Controller interface {
	LetterTyped(ch rune, index int)
	LetterDeleted(index int)
	Submit(text string) bool
	HearAgain()
	Restart() error
	Rebuild() error
	ToggleShowWord() bool
}

// Pauser toggles game time and reports the new state
type Pauser interface {
	Toggle() bool
	IsPaused() bool
}

// Handler turns EventKey presses into session operations
type Handler[T any] struct {
	Session Controller
	Buffer  *Buffer
	Clock   Pauser
	Queue   *event.EventQueue
	Log     *zap.Logger
}

func (h *Handler[T]) EventTypes() []event.EventType {
	return []event.EventType{event.EventKey}
}

func (h *Handler[T]) HandleEvent(_ T, ev event.GameEvent) {
	k, ok := event.PayloadOf[*event.KeyPayload](ev)
	if !ok {
		return
	}
	h.Apply(Resolve(*k))
}

// Apply executes one intent
func (h *Handler[T]) Apply(in Intent) {
	log := h.Log
	if log == nil {
		log = zap.NewNop()
	}

	switch in.Type {
	case IntentQuit:
		if h.Queue != nil {
			h.Queue.Emit(event.EventQuit, nil)
		}
		return
	case IntentPause:
		if h.Clock != nil {
			log.Debug("pause", zap.Bool("paused", h.Clock.Toggle()))
		}
		return
	}

	// Game time is frozen, only quit and unpause get through
	if h.Clock != nil && h.Clock.IsPaused() {
		return
	}

	switch in.Type {
	case IntentLetter:
		if i, ok := h.Buffer.Append(in.Rune); ok {
			h.Session.LetterTyped(in.Rune, i)
		}
	case IntentBackspace:
		if i, ok := h.Buffer.Backspace(); ok {
			h.Session.LetterDeleted(i)
		}
	case IntentSubmit:
		if h.Buffer.Enabled() {
			h.Session.Submit(h.Buffer.Text())
		}
	case IntentHearAgain:
		h.Session.HearAgain()
	case IntentToggleWord:
		log.Debug("show word", zap.Bool("enabled", h.Session.ToggleShowWord()))
	case IntentRestart:
		h.Buffer.Clear()
		if err := h.Session.Restart(); err != nil {
			log.Error("restart", zap.Error(err))
		}
	case IntentRebuild:
		if err := h.Session.Rebuild(); err != nil {
			log.Warn("rebuild", zap.Error(err))
		}
	}
}
