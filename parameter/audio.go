package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between two plays of the same cue
	MinSoundGap = 40 * time.Millisecond
)

// Letter tick
const (
	LetterSoundDuration = 40 * time.Millisecond
	LetterSoundAttack   = 2 * time.Millisecond
	LetterSoundRelease  = 25 * time.Millisecond
	LetterSoundFreq     = 660.0
)

// Error buzz
const (
	ErrorSoundDuration = 80 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 20 * time.Millisecond
	ErrorSoundFreq     = 100.0
)

// Launch whoosh
const (
	LaunchSoundDuration = 300 * time.Millisecond
	LaunchSoundAttack   = 150 * time.Millisecond
	LaunchSoundRelease  = 150 * time.Millisecond
)

// Impact crunch, the big variant plays for bonus launches
const (
	ImpactSoundDuration    = 300 * time.Millisecond
	BigImpactSoundDuration = 700 * time.Millisecond
	ImpactSoundAttack      = 2 * time.Millisecond
	ImpactRumbleFreq       = 80.0
)

// Threshold bell
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Victory arpeggio
const (
	VictoryNoteDuration = 140 * time.Millisecond
	VictoryLastDuration = 420 * time.Millisecond
	VictoryNoteAttack   = 5 * time.Millisecond
	VictoryNoteRelease  = 60 * time.Millisecond
	VictoryLastRelease  = 300 * time.Millisecond
)

// Speech
const (
	// SpeechRate is the words per minute passed to espeak style backends
	SpeechRate = 140
)
