// Package fade implements frame-driven volume transitions: single linear
// ramps and ordered sequences of ramps and holds.
//
// All times are in seconds. Nothing here touches audio devices; callers feed
// the per-frame delta in and write the returned value wherever they like.
package fade

import "math"

// Ramp is a linear transition from one value to another over a fixed duration.
type Ramp struct {
	from     float64
	to       float64
	duration float64
	elapsed  float64
}

// NewRamp creates a ramp. A duration that is not positive (including NaN)
// yields a ramp that is already done.
func NewRamp(from, to, duration float64) *Ramp {
	if !(duration > 0) {
		duration = 0
	}
	return &Ramp{from: from, to: to, duration: duration}
}

// Advance moves the ramp forward by dt seconds and returns the new value.
// Negative deltas are treated as zero.
func (r *Ramp) Advance(dt float64) float64 {
	if r == nil {
		return 0
	}
	if dt > 0 {
		r.elapsed += dt
	}
	return r.Value()
}

// Value returns the current value without advancing.
func (r *Ramp) Value() float64 {
	if r == nil {
		return 0
	}
	if r.Done() {
		return r.to
	}
	return Lerp(r.from, r.to, Clamp01(r.elapsed/r.duration))
}

// Done reports whether the ramp has reached its end value.
func (r *Ramp) Done() bool {
	if r == nil {
		return true
	}
	return !(r.duration > 0) || r.elapsed >= r.duration
}

// Overflow returns how much of the accumulated time lies past the end of the
// ramp. It is zero while the ramp is running.
func (r *Ramp) Overflow() float64 {
	if r == nil {
		return 0
	}
	if !(r.duration > 0) {
		return r.elapsed
	}
	if r.elapsed <= r.duration {
		return 0
	}
	return r.elapsed - r.duration
}

// From returns the start value.
func (r *Ramp) From() float64 { return r.from }

// To returns the end value.
func (r *Ramp) To() float64 { return r.to }

// Duration returns the configured duration.
func (r *Ramp) Duration() float64 { return r.duration }

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
