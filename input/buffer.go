package input

import (
	"sync"
)

// maxTyped caps the typed text, no word in the sets comes close
const maxTyped = 24

// Buffer holds the text typed for the current word
// Keystrokes are accepted only while enabled
type Buffer struct {
	mu      sync.Mutex
	text    []rune
	enabled bool
}

// NewBuffer creates a disabled, empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Enable() {
	b.mu.Lock()
	b.enabled = true
	b.mu.Unlock()
}

func (b *Buffer) Disable() {
	b.mu.Lock()
	b.enabled = false
	b.mu.Unlock()
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.text = b.text[:0]
	b.mu.Unlock()
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Enabled reports whether keystrokes are accepted
func (b *Buffer) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Append adds a rune and returns its index
func (b *Buffer) Append(r rune) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || len(b.text) >= maxTyped {
		return 0, false
	}
	b.text = append(b.text, r)
	return len(b.text) - 1, true
}

// Backspace removes the last rune and returns the index it had
func (b *Buffer) Backspace() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || len(b.text) == 0 {
		return 0, false
	}
	b.text = b.text[:len(b.text)-1]
	return len(b.text), true
}
