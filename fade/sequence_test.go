package fade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceFadeHoldFade(t *testing.T) {
	// Timeline follows the phase lengths: the fade-out runs from 3s to 4s,
	// so the value is 0.5 at 3.5s and the sequence completes at 4s.
	s := NewSequence(Fade(0, 1, 1), Hold(2), Fade(1, 0, 1))

	type step struct {
		at    float64
		value float64
		done  bool
	}
	want := []step{
		{0.5, 0.5, false},
		{1.0, 1.0, false},
		{1.5, 1.0, false},
		{2.0, 1.0, false},
		{2.5, 1.0, false},
		{3.0, 1.0, false},
		{3.5, 0.5, false},
		{4.0, 0.0, true},
	}

	for _, w := range want {
		v, done := s.Advance(0.5)
		assert.InDelta(t, w.value, v, 1e-12, "value at %.1fs", w.at)
		assert.Equal(t, w.done, done, "done at %.1fs", w.at)
	}
}

func TestSequenceStaysDone(t *testing.T) {
	s := NewSequence(Fade(0, 1, 1), Hold(2), Fade(1, 0, 1))
	var elapsed float64
	for elapsed < 5 {
		s.Advance(0.5)
		elapsed += 0.5
	}
	v, done := s.Advance(0.5)
	assert.True(t, done)
	assert.Equal(t, 0.0, v)
}

func TestSequenceCarriesOverflow(t *testing.T) {
	s := NewSequence(Fade(0, 1, 1), Fade(1, 0, 1))

	v, done := s.Advance(1.5)
	assert.False(t, done)
	assert.InDelta(t, 0.5, v, 1e-12)
	assert.Equal(t, 1, s.Phase())

	v, done = s.Advance(100)
	assert.True(t, done)
	assert.Equal(t, 0.0, v)
}

func TestSequenceSkipsZeroLengthPhases(t *testing.T) {
	s := NewSequence(Fade(0, 0.7, 0), Hold(-1), Fade(0.7, 0.2, 0))
	v, done := s.Advance(0)
	assert.True(t, done)
	assert.Equal(t, 0.2, v)
}

func TestSequenceNaNPhaseIsInstant(t *testing.T) {
	s := NewSequence(Fade(0, 1, math.NaN()), Hold(math.NaN()), Fade(1, 0.25, 1))
	v, done := s.Advance(0.5)
	assert.False(t, done)
	assert.InDelta(t, 0.625, v, 1e-12)
}

func TestSequenceEmpty(t *testing.T) {
	s := NewSequence()
	v, done := s.Advance(1)
	assert.True(t, done)
	assert.Zero(t, v)
	assert.Zero(t, s.End())
}

func TestSequenceEndAndDuration(t *testing.T) {
	s := Triangle(0.1, 0.9, 0.3, 0.5, 2, 0.25)
	assert.Equal(t, 0.3, s.End())
	assert.InDelta(t, 2.75, s.Duration(), 1e-12)
	assert.Equal(t, 3, s.Len())

	trailing := NewSequence(Fade(0, 0.4, 1), Hold(1))
	assert.Equal(t, 0.4, trailing.End())
}

func TestTriangleNegativeHold(t *testing.T) {
	s := Triangle(0, 1, 0, 1, -3, 1)
	s.Advance(1)
	v, done := s.Advance(0.5)
	assert.False(t, done)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestSequenceReset(t *testing.T) {
	s := NewSequence(Fade(0.2, 1, 1))
	s.Advance(2)
	assert.True(t, s.Done())

	s.Reset()
	assert.False(t, s.Done())
	assert.Equal(t, 0.2, s.Value())
	v, _ := s.Advance(0.5)
	assert.InDelta(t, 0.6, v, 1e-12)
}
