package main

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/travel/ecs"
)

const (
	sampleRate    = 44100
	chimeFreq     = 880.0
	chimeDuration = 90 * time.Millisecond
)

var audioContext = audio.NewContext(sampleRate)

// Chime plays a short tone whenever a mover reaches a waypoint.
type Chime struct {
	player *audio.Player
}

func NewChime(volume float64) *Chime {
	player := audioContext.NewPlayerFromBytes(tone(chimeFreq, chimeDuration))
	player.SetVolume(volume)
	return &Chime{player: player}
}

func (c *Chime) OnArrived(_ *ecs.World, _ ecs.Event) {
	if c == nil || c.player == nil || c.player.IsPlaying() {
		return
	}
	_ = c.player.Rewind()
	c.player.Play()
}

// tone renders a decaying sine as 16-bit little-endian stereo PCM.
func tone(freq float64, d time.Duration) []byte {
	n := int(d.Seconds() * sampleRate)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		env := math.Exp(-t * 40)
		v := int16(math.Sin(2*math.Pi*freq*t) * env * 0.6 * math.MaxInt16)
		lo, hi := byte(v), byte(uint16(v)>>8)
		buf[4*i], buf[4*i+1] = lo, hi
		buf[4*i+2], buf[4*i+3] = lo, hi
	}
	return buf
}
