package fade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampReachesEndExactly(t *testing.T) {
	cases := []struct {
		name     string
		from, to float64
		duration float64
		dt       float64
	}{
		{"up", 0, 1, 1, 0.1},
		{"down", 1, 0.2, 2, 0.3},
		{"flat", 0.4, 0.4, 1, 0.25},
		{"large_step", 0.1, 0.9, 0.5, 10},
		{"odd_step", 0.3, 0.7, 1, 1.0 / 60.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRamp(c.from, c.to, c.duration)
			prev := c.from
			var elapsed float64
			for !r.Done() {
				v := r.Advance(c.dt)
				elapsed += c.dt
				if c.to >= c.from {
					assert.GreaterOrEqual(t, v, prev)
					assert.LessOrEqual(t, v, c.to)
				} else {
					assert.LessOrEqual(t, v, prev)
					assert.GreaterOrEqual(t, v, c.to)
				}
				prev = v
				require.Less(t, elapsed, c.duration+c.dt+1e-9, "ramp did not finish in time")
			}
			assert.Equal(t, c.to, r.Value())
			assert.Equal(t, c.to, r.Advance(c.dt))
		})
	}
}

func TestRampNonPositiveDuration(t *testing.T) {
	for _, d := range []float64{0, -1} {
		r := NewRamp(0.2, 0.8, d)
		assert.True(t, r.Done())
		assert.Equal(t, 0.8, r.Advance(0))
		assert.Equal(t, 0.8, r.Advance(5))
	}
}

func TestRampNaNDuration(t *testing.T) {
	r := NewRamp(0.2, 0.8, math.NaN())
	assert.True(t, r.Done())
	assert.Equal(t, 0.8, r.Value())
	assert.Equal(t, 0.0, r.Duration())
}

func TestClamp01(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"below", -0.5, 0},
		{"inside", 0.25, 0.25},
		{"above", 3, 1},
		{"nan", math.NaN(), 0},
		{"pos_inf", math.Inf(1), 1},
		{"neg_inf", math.Inf(-1), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Clamp01(c.in))
		})
	}
}

func TestRampNegativeDeltaIgnored(t *testing.T) {
	r := NewRamp(0, 1, 1)
	r.Advance(0.5)
	assert.Equal(t, 0.5, r.Advance(-0.25))
}

func TestRampOverflow(t *testing.T) {
	r := NewRamp(0, 1, 1)
	r.Advance(0.75)
	assert.Zero(t, r.Overflow())
	r.Advance(0.5)
	assert.InDelta(t, 0.25, r.Overflow(), 1e-12)

	instant := NewRamp(0, 1, 0)
	instant.Advance(0.3)
	assert.InDelta(t, 0.3, instant.Overflow(), 1e-12)
}

func TestNilRamp(t *testing.T) {
	var r *Ramp
	assert.True(t, r.Done())
	assert.Zero(t, r.Advance(1))
}
