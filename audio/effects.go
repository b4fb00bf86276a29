package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/spell-smash/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency glides linearly between two values
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a gliding sine oscillator
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = math.Max(0, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a stream with a linear gain
// math.Log2(0) is -Inf, so zero volume is rendered silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// Cue recipes, each returns a finite stream scaled by volume
// Mixed layers are bounded with Take since a mix does not end on its own

// CreateLetterSound is a short tick for every staged letter
func CreateLetterSound(volume float64, rate beep.SampleRate) beep.Streamer {
	s := tone(parameter.LetterSoundFreq, parameter.LetterSoundDuration,
		parameter.LetterSoundAttack, parameter.LetterSoundRelease, WaveSine, rate)
	return newVolume(s, volume*0.5)
}

// CreateErrorSound generates a short harsh buzz for a wrong submit
func CreateErrorSound(volume float64, rate beep.SampleRate) beep.Streamer {
	s := tone(parameter.ErrorSoundFreq, parameter.ErrorSoundDuration,
		parameter.ErrorSoundAttack, parameter.ErrorSoundRelease, WaveSaw, rate)
	return newVolume(s, volume)
}

// CreateLaunchSound is a noise whoosh layered over a rising sweep
func CreateLaunchSound(volume float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.LaunchSoundDuration
	noise := tone(0, d, parameter.LaunchSoundAttack, parameter.LaunchSoundRelease, WaveNoise, rate)
	rise := NewEnvelope(NewSweep(180, 520, d, rate), d, parameter.LaunchSoundAttack, parameter.LaunchSoundRelease, rate)
	return newVolume(beep.Take(rate.N(d), beep.Mix(newVolume(noise, 0.6), newVolume(rise, 0.3))), volume)
}

// CreateImpactSound is a crunch of noise and low rumble, longer for bonus words
func CreateImpactSound(volume float64, big bool, rate beep.SampleRate) beep.Streamer {
	d := parameter.ImpactSoundDuration
	if big {
		d = parameter.BigImpactSoundDuration
	}
	noise := tone(0, d, parameter.ImpactSoundAttack, d*3/4, WaveNoise, rate)
	rumble := tone(parameter.ImpactRumbleFreq, d, parameter.ImpactSoundAttack, d*3/4, WaveSine, rate)
	return newVolume(beep.Take(rate.N(d), beep.Mix(newVolume(noise, 0.4), newVolume(rumble, 0.6))), volume)
}

// CreateBellSound generates a ding for a threshold crossing
func CreateBellSound(volume float64, rate beep.SampleRate) beep.Streamer {
	d := parameter.BellSoundDuration
	fund := tone(880.0, d, parameter.BellSoundAttack, parameter.BellSoundFundamentalRelease, WaveSine, rate)
	over := tone(1760.0, d, parameter.BellSoundAttack, parameter.BellSoundOvertoneRelease, WaveSine, rate)
	return newVolume(beep.Take(rate.N(d), beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))), volume)
}

// CreateVictorySound plays a rising major arpeggio
func CreateVictorySound(volume float64, rate beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99} // C5 E5 G5
	var seq []beep.Streamer
	for _, f := range notes {
		seq = append(seq, tone(f, parameter.VictoryNoteDuration,
			parameter.VictoryNoteAttack, parameter.VictoryNoteRelease, WaveSquare, rate))
	}
	seq = append(seq, tone(1046.5, parameter.VictoryLastDuration,
		parameter.VictoryNoteAttack, parameter.VictoryLastRelease, WaveSquare, rate))
	return newVolume(beep.Seq(seq...), volume*0.5)
}

// GetSoundEffect returns the streamer for a cue, nil for unknown types
func GetSoundEffect(soundType SoundType, volume float64, rate beep.SampleRate) beep.Streamer {
	switch soundType {
	case SoundLetter:
		return CreateLetterSound(volume, rate)
	case SoundError:
		return CreateErrorSound(volume, rate)
	case SoundLaunch:
		return CreateLaunchSound(volume, rate)
	case SoundImpact:
		return CreateImpactSound(volume, false, rate)
	case SoundBigImpact:
		return CreateImpactSound(volume, true, rate)
	case SoundThreshold:
		return CreateBellSound(volume, rate)
	case SoundVictory:
		return CreateVictorySound(volume, rate)
	default:
		return nil
	}
}
