package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/parameter"
)

// newTestManager returns an initialized manager whose output is captured instead of hitting the device
func newTestManager(now *time.Time) (*SoundManager, *[]beep.Streamer) {
	sm := NewSoundManager(config.AudioConfig{Enabled: true, Volume: 0.5}, nil)
	var played []beep.Streamer
	sm.output = func(s beep.Streamer) { played = append(played, s) }
	sm.now = func() time.Time { return *now }
	sm.initialized = true
	return sm, &played
}

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: true, Volume: 1}, nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for st := SoundType(0); st < soundTypeCount; st++ {
		if sm.Play(st) {
			t.Errorf("Expected %s to be dropped before initialization", st)
		}
	}
	sm.Cleanup()
}

// TestSoundManagerDisabled verifies disabled audio never opens the device
func TestSoundManagerDisabled(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: false}, nil)
	if err := sm.Initialize(); err != nil {
		t.Fatalf("Disabled initialization should be a no-op, got: %v", err)
	}
	if sm.Initialized() {
		t.Error("Disabled manager should stay uninitialized")
	}
	if sm.Play(SoundLetter) {
		t.Error("Disabled manager should not play")
	}
}

// TestSoundManagerInitialization verifies sound manager can be initialized twice and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: true, Volume: 0.1}, nil)

	// Speaker initialization may fail in environments without audio devices
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Cleanup()
	if sm.Initialized() {
		t.Error("Cleanup should reset initialization")
	}
}

// TestSoundManagerMinimumGap verifies rapid repeats of one cue are dropped
func TestSoundManagerMinimumGap(t *testing.T) {
	now := time.Unix(1000, 0)
	sm, played := newTestManager(&now)

	if !sm.Play(SoundLetter) {
		t.Fatal("First cue should play")
	}
	if sm.Play(SoundLetter) {
		t.Error("Repeat inside the gap should be dropped")
	}
	if !sm.Play(SoundError) {
		t.Error("A different cue should not be gated")
	}

	now = now.Add(parameter.MinSoundGap)
	if !sm.Play(SoundLetter) {
		t.Error("Cue should play once the gap elapsed")
	}
	if len(*played) != 3 {
		t.Errorf("Expected 3 streams, got %d", len(*played))
	}
}

// TestSoundManagerInvalidType verifies unknown cues are ignored
func TestSoundManagerInvalidType(t *testing.T) {
	now := time.Unix(1000, 0)
	sm, played := newTestManager(&now)

	if sm.Play(SoundType(42)) || sm.Play(SoundType(-1)) {
		t.Error("Unknown cue should not play")
	}
	if len(*played) != 0 {
		t.Errorf("Expected no streams, got %d", len(*played))
	}
}

// TestAudioConstants verifies audio constants are reasonable
func TestAudioConstants(t *testing.T) {
	if sampleRate != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", sampleRate)
	}
	if parameter.AudioBufferDuration <= 0 {
		t.Error("Speaker buffer duration must be positive")
	}
	if parameter.BigImpactSoundDuration <= parameter.ImpactSoundDuration {
		t.Error("Big impact should outlast the normal impact")
	}

	frequencies := []struct {
		name  string
		value float64
	}{
		{"ErrorSoundFreq", parameter.ErrorSoundFreq},
		{"ImpactRumbleFreq", parameter.ImpactRumbleFreq},
		{"LetterSoundFreq", parameter.LetterSoundFreq},
	}
	for _, freq := range frequencies {
		// Human hearing range is roughly 20Hz to 20kHz
		if freq.value < 20 || freq.value > 20000 {
			t.Errorf("%s should be audible, got %f", freq.name, freq.value)
		}
	}
}
