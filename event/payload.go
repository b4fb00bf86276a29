package event

import "time"

// Payload is implemented by every event payload type
// Events without data carry a nil Payload
type Payload interface {
	payload()
}

// PayloadOf returns the payload of ev as P
// ok is false for a nil payload or a payload of another type
func PayloadOf[P Payload](ev GameEvent) (p P, ok bool) {
	p, ok = ev.Payload.(P)
	return p, ok
}

func (*RoundPayload) payload()   {}
func (*WordPayload) payload()    {}
func (*LetterPayload) payload()  {}
func (*LaunchPayload) payload()  {}
func (*ImpactPayload) payload()  {}
func (*KeyPayload) payload()     {}
func (*SessionPayload) payload() {}

// RoundPayload identifies a building within the session
type RoundPayload struct {
	BuildingIndex int
	SessionLength int
	Pattern       string
}

// WordPayload carries the target word and attempt count
type WordPayload struct {
	Word     string
	Attempts int
}

// LetterPayload carries a staged letter
type LetterPayload struct {
	Char  rune
	Index int
}

// LaunchPayload describes a released projectile
type LaunchPayload struct {
	Letters int
	Angle   float64
	Power   int
}

// ImpactPayload describes the canonical impact of a launch
type ImpactPayload struct {
	X, Y  float64
	Power int
}

// KeyPayload is a key press translated out of the terminal layer
type KeyPayload struct {
	Rune rune
	Key  Key
}

// Key enumerates non-rune keys the session reacts to
type Key int

const (
	KeyRune Key = iota
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyTab
	KeyCtrlR
	KeyCtrlB
	KeyCtrlP
)

// SessionPayload is the final session summary
type SessionPayload struct {
	StartedAt          time.Time
	FinishedAt         time.Time
	Buildings          int
	WordsCompleted     int
	PerfectWords       int
	TotalWrongAttempts int
	BestStreak         int
	Accuracy           int
}
