package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays short synthesized cues through a shared mixer
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	log         *zap.Logger
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  [soundTypeCount]time.Time

	// now is replaced in tests
	now func() time.Time
	// output is the speaker hook, replaced in tests
	output func(beep.Streamer)
}

// NewSoundManager creates a sound manager, Initialize must be called before cues play
func NewSoundManager(cfg config.AudioConfig, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	sm := &SoundManager{
		cfg:   cfg,
		log:   log,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
	sm.output = sm.mixer.Add
	return sm
}

// Initialize sets up the audio device
// Disabled audio leaves the manager silent without touching the device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug("audio initialized", zap.Int("rate", int(sampleRate)))
	return nil
}

// Initialized reports whether cues reach the device
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a cue, repeats inside the minimum gap are dropped
func (sm *SoundManager) Play(t SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || t < 0 || t >= soundTypeCount {
		return false
	}
	now := sm.now()
	if last := sm.lastPlayed[t]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		return false
	}
	s := GetSoundEffect(t, sm.cfg.Volume, sampleRate)
	if s == nil {
		return false
	}
	sm.lastPlayed[t] = now

	speaker.Lock()
	sm.output(s)
	speaker.Unlock()
	return true
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no device close, clearing the mixer silences output
	sm.initialized = false
}
