// Package audio plays the short tone cues of the game through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

// cues maps every cue to the tones played one after another.
var cues = map[i.Cue][]tone{
	i.CueClear: {{freq: 660, duration: 90 * time.Millisecond}, {freq: 880, duration: 90 * time.Millisecond}, {freq: 1320, duration: 160 * time.Millisecond}},
	i.CueDeath: {{freq: 220, duration: 150 * time.Millisecond}, {freq: 147, duration: 250 * time.Millisecond}},
	i.CueTilt:  {{freq: 520, duration: 30 * time.Millisecond}},
}

// Player mixes cues into one speaker stream.
// Implements i.SoundPlayer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

var _ i.SoundPlayer = &Player{}

// NewPlayer creates a Player. Nothing is heard until Initialize succeeds.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play implements i.SoundPlayer. Unknown cues and an uninitialized speaker are ignored.
func (p *Player) Play(cue i.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s, err := cueStreamer(cue, sampleRate)
	if err != nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// cueStreamer renders the tones of cue at a comfortable volume.
func cueStreamer(cue i.Cue, sr beep.SampleRate) (beep.Streamer, error) {
	tones, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sr, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(t.duration), sine))
	}

	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   -2,
	}, nil
}
