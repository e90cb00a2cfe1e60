package ecs

import "time"

// Time is the simulated clock supplied by the host before each tick.
type Time struct {
	delta   time.Duration
	elapsed time.Duration
	tick    uint64
}

// Advance starts a new tick lasting d.
func (w *World) Advance(d time.Duration) {
	if w == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	w.time.delta = d
	w.time.elapsed += d
	w.time.tick++
}

// SetDelta overrides the current tick length without advancing the clock.
func (w *World) SetDelta(d time.Duration) {
	if w == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	w.time.delta = d
}

func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.time.delta
}

func (w *World) DeltaSeconds() float64 {
	return w.Delta().Seconds()
}

// DeltaMillis returns the tick length in fractional milliseconds.
func (w *World) DeltaMillis() float64 {
	return float64(w.Delta()) / float64(time.Millisecond)
}

func (w *World) Elapsed() time.Duration {
	if w == nil {
		return 0
	}
	return w.time.elapsed
}

func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.time.tick
}
