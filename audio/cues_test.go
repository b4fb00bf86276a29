package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/spell-smash/event"
)

type recordingPlayer struct {
	played []SoundType
}

func (p *recordingPlayer) Play(t SoundType) bool {
	p.played = append(p.played, t)
	return true
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   event.GameEvent
		want SoundType
		ok   bool
	}{
		{"letter", event.GameEvent{Type: event.EventLetterAdded}, SoundLetter, true},
		{"launch", event.GameEvent{Type: event.EventLaunched}, SoundLaunch, true},
		{"impact", event.GameEvent{Type: event.EventImpact, Payload: &event.ImpactPayload{}}, SoundImpact, true},
		{"bonus impact", event.GameEvent{Type: event.EventImpact, Payload: &event.ImpactPayload{Power: 2}}, SoundBigImpact, true},
		{"impact without payload", event.GameEvent{Type: event.EventImpact}, SoundImpact, true},
		{"wrong", event.GameEvent{Type: event.EventWrongSubmit}, SoundError, true},
		{"threshold", event.GameEvent{Type: event.EventThresholdCrossed}, SoundThreshold, true},
		{"victory", event.GameEvent{Type: event.EventVictory}, SoundVictory, true},
		{"silent", event.GameEvent{Type: event.EventWordPresented}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CueFor(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCueHandlerRouting(t *testing.T) {
	queue := event.NewEventQueue()
	router := event.NewRouter[struct{}](queue)
	player := &recordingPlayer{}
	router.Register(&CueHandler[struct{}]{Player: player})

	queue.Emit(event.EventLetterAdded, &event.LetterPayload{Char: 'a'})
	queue.Emit(event.EventWordPresented, &event.WordPayload{Word: "cat"})
	queue.Emit(event.EventImpact, &event.ImpactPayload{Power: 1})
	queue.Emit(event.EventVictory, nil)

	assert.Equal(t, 4, router.DispatchAll(struct{}{}))
	assert.Equal(t, []SoundType{SoundLetter, SoundBigImpact, SoundVictory}, player.played)
}
