package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundLetter    SoundType = iota // Letter staged
	SoundError                      // Wrong submit buzz
	SoundLaunch                     // Projectile released
	SoundImpact                     // Word hits the building
	SoundBigImpact                  // Bonus word hits the building
	SoundThreshold                  // Building knocked below threshold
	SoundVictory                    // Last building down
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"letter", "error", "launch", "impact", "big_impact", "threshold", "victory"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// SpeechBackend describes a CLI text-to-speech program
type SpeechBackend struct {
	Name string
	Path string
	Args []string // Placed before the word
}

// Sentinel errors
var (
	ErrNoSpeechBackend = errors.New("no compatible speech backend found")
)
