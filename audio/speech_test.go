package audio

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	set := make(map[string]bool)
	for _, a := range available {
		set[a] = true
	}
	lookPath = func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestDetectSpeechPriority(t *testing.T) {
	withLookPath(t, "say", "espeak", "spd-say")

	b, err := DetectSpeech("")
	require.NoError(t, err)
	assert.Equal(t, "espeak", b.Name)
	assert.Equal(t, "/usr/bin/espeak", b.Path)
	assert.Equal(t, []string{"-s", "140"}, b.Args)
}

func TestDetectSpeechExplicit(t *testing.T) {
	withLookPath(t, "espeak-ng", "festival")

	b, err := DetectSpeech("festival")
	require.NoError(t, err)
	assert.Equal(t, "festival", b.Name)
	assert.Empty(t, b.Args)

	_, err = DetectSpeech("missing")
	assert.ErrorIs(t, err, ErrNoSpeechBackend)
}

func TestDetectSpeechNone(t *testing.T) {
	withLookPath(t)

	_, err := DetectSpeech("")
	assert.ErrorIs(t, err, ErrNoSpeechBackend)
}

func TestSpeechSpeaksWord(t *testing.T) {
	s := NewSpeech(&SpeechBackend{Name: "fake", Path: "/bin/fake"}, nil)
	var mu sync.Mutex
	var spoken []string
	s.run = func(_ context.Context, _ *SpeechBackend, word string) error {
		mu.Lock()
		spoken = append(spoken, word)
		mu.Unlock()
		return nil
	}

	s.Speak("cat")
	s.Speak("")
	s.Wait()

	assert.Equal(t, []string{"cat"}, spoken)
	assert.False(t, s.Disabled())
}

func TestSpeechDisablesAfterFailure(t *testing.T) {
	s := NewSpeech(&SpeechBackend{Name: "fake", Path: "/bin/fake"}, nil)
	calls := 0
	s.run = func(context.Context, *SpeechBackend, string) error {
		calls++
		return errors.New("exit status 1")
	}

	s.Speak("dog")
	s.Wait()
	require.True(t, s.Disabled())

	s.Speak("sun")
	s.Wait()
	assert.Equal(t, 1, calls)
}

func TestSpeechWithoutBackend(t *testing.T) {
	s := NewSpeech(nil, nil)
	s.Speak("cat")
	s.Wait()
	assert.False(t, s.Disabled())
}
