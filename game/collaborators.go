package game

// Input is the text entry the player types into
// The session enables it only while a word is awaited
type Input interface {
	Enable()
	Disable()
	Clear()
	Text() string
}

// Speaker pronounces words, fire-and-forget
type Speaker interface {
	Speak(word string)
}

// NopInput is an Input with no backing widget
type NopInput struct{}

func (NopInput) Enable()      {}
func (NopInput) Disable()     {}
func (NopInput) Clear()       {}
func (NopInput) Text() string { return "" }

// NopSpeaker discards speech requests
type NopSpeaker struct{}

func (NopSpeaker) Speak(string) {}
