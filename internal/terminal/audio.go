package terminal

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate     = beep.SampleRate(44100)
	chirpFrequency = 880
	chirpDuration  = 60 * time.Millisecond
	chirpVolume    = 0.3
)

// Chirper plays a short sound when the flock is respawned.
type Chirper interface {
	Chirp()
	Close()
}

// silent is used when no audio device is available.
type silent struct{}

func (silent) Chirp() {}
func (silent) Close() {}

type speakerChirper struct{}

// NewChirper opens the speaker. On failure it returns a silent Chirper and the error.
func NewChirper() (Chirper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return silent{}, err
	}
	return speakerChirper{}, nil
}

func (speakerChirper) Chirp() {
	tone, err := generators.SineTone(sampleRate, chirpFrequency)
	if err != nil {
		return
	}
	speaker.Play(withVolume(beep.Take(sampleRate.N(chirpDuration), tone), chirpVolume))
}

func (speakerChirper) Close() { speaker.Close() }

// withVolume scales a streamer by a linear factor in (0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
