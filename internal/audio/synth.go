package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

const (
	sampleRate          = 44100
	bufferSizeBytes10ms = sampleRate / 100 * 2 // 10ms of 16-bit mono audio

	attackSamples  = sampleRate / 100 // 10ms ramp in, avoids clicks
	releaseSamples = sampleRate / 20  // 50ms fade after note off
	voiceGain      = 0.2              // headroom for chords
)

// Synth renders sustained sine voices through a single oto stream. A voice
// starts on NoteOn, holds while selected and fades out after NoteOff. The
// tuning decides each pitch's frequency.
type Synth struct {
	ctx    *oto.Context
	mix    *mixer
	tuning pitch.Tuning
	logger *game_log.Logger
}

func NewSynth(tuning pitch.Tuning, logger *game_log.Logger) (*Synth, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	<-ready
	logger.Infof("[SYNTH] context ready, tuning=%s", tuning.Name)
	return &Synth{ctx: ctx, mix: newMixer(ctx), tuning: tuning, logger: logger}, nil
}

func (s *Synth) NoteOn(p, velocity uint8) error {
	freq := s.tuning.Frequency(int(p))
	gain := float64(velocity) / 127 * voiceGain
	s.logger.Debugf("[SYNTH] on %d (%.2f Hz)", p, freq)
	s.mix.noteOn(p, freq, gain)
	return nil
}

func (s *Synth) NoteOff(p uint8) error {
	s.mix.noteOff(p)
	return nil
}

// Close stops playback and suspends the audio device.
func (s *Synth) Close() error {
	s.mix.stop()
	return s.ctx.Suspend()
}

// mixer mixes the active voices into one PCM stream.
type mixer struct {
	mu     sync.Mutex
	voices map[uint8]*voice
	player *oto.Player
}

func newMixer(c *oto.Context) *mixer {
	m := &mixer{voices: make(map[uint8]*voice)}
	p := c.NewPlayer(m)
	p.SetBufferSize(bufferSizeBytes10ms)
	p.Play()
	m.player = p
	return m
}

// noteOn replaces any running voice at the same pitch.
func (m *mixer) noteOn(key uint8, freq, gain float64) {
	m.mu.Lock()
	m.voices[key] = &voice{step: 2 * math.Pi * freq / sampleRate, gain: gain}
	m.mu.Unlock()
}

func (m *mixer) noteOff(key uint8) {
	m.mu.Lock()
	if v, ok := m.voices[key]; ok {
		v.releasing = true
	}
	m.mu.Unlock()
}

func (m *mixer) stop() {
	m.mu.Lock()
	m.voices = map[uint8]*voice{}
	m.mu.Unlock()
	if m.player != nil {
		m.player.Close()
	}
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	for i := 0; i < samples; i++ {
		var sum float64
		for key, v := range m.voices {
			val, done := v.sample()
			sum += val
			if done {
				delete(m.voices, key)
			}
		}
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		s := int16(sum * 32767)
		p[2*i] = byte(s)
		p[2*i+1] = byte(s >> 8)
	}
	m.mu.Unlock()
	return len(p), nil
}

// voice is one sine oscillator with a linear attack and release envelope.
type voice struct {
	phase     float64
	step      float64
	gain      float64
	age       int
	releasing bool
	release   int
}

func (v *voice) sample() (float64, bool) {
	env := 1.0
	if v.age < attackSamples {
		env = float64(v.age) / attackSamples
	}
	if v.releasing {
		env *= 1 - float64(v.release)/releaseSamples
		v.release++
		if v.release >= releaseSamples {
			return 0, true
		}
	}
	val := math.Sin(v.phase) * v.gain * env
	v.phase += v.step
	if v.phase > 2*math.Pi {
		v.phase -= 2 * math.Pi
	}
	v.age++
	return val, false
}
