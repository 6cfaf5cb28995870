package speed

import (
	"bytes"
	"testing"

	"github.com/milk9111/soundctl/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableConfiguredAndDefaults(t *testing.T) {
	cases := []struct {
		name    string
		entries map[Class]float64
		want    map[Class]float64
	}{
		{
			name:    "empty",
			entries: nil,
			want:    map[Class]float64{Idle: 0.3, Normal: 0.6, Boost: 1.0},
		},
		{
			name:    "idle_only",
			entries: map[Class]float64{Idle: 0.2},
			want:    map[Class]float64{Idle: 0.2, Normal: 0.6, Boost: 1.0},
		},
		{
			name:    "clamped",
			entries: map[Class]float64{Normal: 1.7, Boost: -0.4},
			want:    map[Class]float64{Idle: 0.3, Normal: 1.0, Boost: 0},
		},
		{
			name:    "unknown_entry_skipped",
			entries: map[Class]float64{Class(9): 0.1, Boost: 0.8},
			want:    map[Class]float64{Idle: 0.3, Normal: 0.6, Boost: 0.8},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table := NewTable(c.entries)
			for class, v := range c.want {
				assert.Equal(t, v, table.Lookup(class), "class %s", class)
			}
			assert.Equal(t, c.want, table.Snapshot())
		})
	}
}

func TestTableUnknownLookup(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(nil) })

	table := NewTable(nil)
	assert.NotPanics(t, func() {
		assert.Equal(t, 0.5, table.Lookup(Class(42)))
		assert.Equal(t, 0.5, table.Lookup(Class(-1)))
	})
	assert.Contains(t, buf.String(), "unknown speed class")
}

func TestTableUpdate(t *testing.T) {
	table := NewTable(nil)
	table.Update(Normal, 0.45)
	assert.Equal(t, 0.45, table.Lookup(Normal))

	table.Update(Boost, 3)
	assert.Equal(t, 1.0, table.Lookup(Boost))

	table.Update(Class(7), 0.1)
	assert.Equal(t, 0.3, table.Lookup(Idle))
}

func TestDefaultVolumesAreNotShared(t *testing.T) {
	a := NewTable(nil)
	a.Update(Idle, 0.9)

	b := NewTable(nil)
	assert.Equal(t, 0.3, b.Lookup(Idle))
	assert.Equal(t, 0.3, DefaultVolume(Idle))
	assert.Equal(t, 0.6, DefaultVolume(Normal))
	assert.Equal(t, 1.0, DefaultVolume(Boost))
	assert.Equal(t, FallbackVolume, DefaultVolume(Class(42)))
}

func TestNilTable(t *testing.T) {
	var table *Table
	assert.Equal(t, FallbackVolume, table.Lookup(Idle))
	assert.NotPanics(t, func() { table.Update(Idle, 1) })
}

func TestParseClass(t *testing.T) {
	for _, c := range Classes {
		got, err := ParseClass(" " + c.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseClass("BOOST")
	require.NoError(t, err)
	assert.Equal(t, Boost, got)

	_, err = ParseClass("warp")
	assert.Error(t, err)
	assert.Equal(t, "Class(5)", Class(5).String())
}

func TestClassifier(t *testing.T) {
	c := Classifier{NormalAt: 10, BoostAt: 30}
	cases := []struct {
		speed float64
		want  Class
	}{
		{0, Idle},
		{9.99, Idle},
		{10, Normal},
		{29, Normal},
		{30, Boost},
		{120, Boost},
		{-15, Normal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.speed), "speed %v", tc.speed)
	}
}
