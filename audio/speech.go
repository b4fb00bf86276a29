package audio

import (
	"context"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/parameter"
)

// lookPath is replaced in tests
var lookPath = exec.LookPath

// DetectSpeech searches for a text-to-speech program
// An explicit command wins, otherwise: espeak-ng > espeak > spd-say > say
func DetectSpeech(command string) (*SpeechBackend, error) {
	if command != "" {
		path, err := lookPath(command)
		if err != nil {
			return nil, ErrNoSpeechBackend
		}
		return &SpeechBackend{Name: command, Path: path}, nil
	}

	rate := strconv.Itoa(parameter.SpeechRate)

	// eSpeak NG (Linux)
	if path, err := lookPath("espeak-ng"); err == nil {
		return &SpeechBackend{Name: "espeak-ng", Path: path, Args: []string{"-s", rate}}, nil
	}

	// Legacy eSpeak
	if path, err := lookPath("espeak"); err == nil {
		return &SpeechBackend{Name: "espeak", Path: path, Args: []string{"-s", rate}}, nil
	}

	// speech-dispatcher
	if path, err := lookPath("spd-say"); err == nil {
		return &SpeechBackend{Name: "spd-say", Path: path, Args: []string{"-w"}}, nil
	}

	// macOS
	if path, err := lookPath("say"); err == nil {
		return &SpeechBackend{Name: "say", Path: path, Args: []string{"-r", rate}}, nil
	}

	return nil, ErrNoSpeechBackend
}

// Speech speaks words through a CLI backend without blocking the caller
// The first failure disables it for the rest of the process
type Speech struct {
	backend  *SpeechBackend
	log      *zap.Logger
	disabled atomic.Bool
	wg       sync.WaitGroup

	// run executes one utterance, replaced in tests
	run func(ctx context.Context, b *SpeechBackend, word string) error
}

const speechTimeout = 5 * time.Second

// NewSpeech creates a speaker for the given backend
func NewSpeech(backend *SpeechBackend, log *zap.Logger) *Speech {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speech{backend: backend, log: log, run: runBackend}
}

func runBackend(ctx context.Context, b *SpeechBackend, word string) error {
	args := append(append([]string{}, b.Args...), word)
	return exec.CommandContext(ctx, b.Path, args...).Run()
}

// Speak starts an utterance in the background
func (s *Speech) Speak(word string) {
	if s.backend == nil || word == "" || s.disabled.Load() {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		if err := s.run(ctx, s.backend, word); err != nil {
			if s.disabled.CompareAndSwap(false, true) {
				s.log.Warn("speech disabled", zap.String("backend", s.backend.Name), zap.Error(err))
			}
		}
	}()
}

// Disabled reports whether a failure switched speech off
func (s *Speech) Disabled() bool {
	return s.disabled.Load()
}

// Wait blocks until pending utterances finished
func (s *Speech) Wait() {
	s.wg.Wait()
}
