package audio

import (
	"github.com/lixenwraith/spell-smash/event"
)

// Player is the sink of cue sounds
type Player interface {
	Play(t SoundType) bool
}

// CueFor maps a session event to its sound cue
func CueFor(ev event.GameEvent) (SoundType, bool) {
	switch ev.Type {
	case event.EventLetterAdded:
		return SoundLetter, true
	case event.EventLaunched:
		return SoundLaunch, true
	case event.EventImpact:
		if p, ok := event.PayloadOf[*event.ImpactPayload](ev); ok && p.Power > 0 {
			return SoundBigImpact, true
		}
		return SoundImpact, true
	case event.EventWrongSubmit:
		return SoundError, true
	case event.EventThresholdCrossed:
		return SoundThreshold, true
	case event.EventVictory:
		return SoundVictory, true
	}
	return 0, false
}

// CueHandler routes session events to a player
type CueHandler[T any] struct {
	Player Player
}

func (h *CueHandler[T]) HandleEvent(_ T, ev event.GameEvent) {
	if t, ok := CueFor(ev); ok {
		h.Player.Play(t)
	}
}

func (h *CueHandler[T]) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventLetterAdded,
		event.EventLaunched,
		event.EventImpact,
		event.EventWrongSubmit,
		event.EventThresholdCrossed,
		event.EventVictory,
	}
}
