package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedClips(t *testing.T) {
	clips := Clips()
	for _, name := range []string{"music.wav", "engine.wav", "horn.wav", "boost.wav", "stinger.wav"} {
		assert.Contains(t, clips, name)
		b, err := LoadAudio("assets/" + name)
		require.NoError(t, err)
		assert.Equal(t, "RIFF", string(b[:4]))
	}
}

func TestLoadAudioUnknownClip(t *testing.T) {
	_, err := LoadAudio("siren.wav")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownClip))
}

func TestLoaderWithoutContext(t *testing.T) {
	_, err := NewLoader(nil).Load("horn.wav")
	assert.Error(t, err)
}

func TestStreamSeconds(t *testing.T) {
	cases := []struct {
		name       string
		size       int64
		sampleRate int
		want       float64
	}{
		{"one_second", 4 * 44100, 44100, 1},
		{"half_second", 2 * 48000, 48000, 0.5},
		{"empty", 0, 44100, 0},
		{"unknown_rate", 1024, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, streamSeconds(c.size, c.sampleRate), 1e-12)
		})
	}
}

func TestCleanAssetPath(t *testing.T) {
	assert.Equal(t, "horn.wav", cleanAssetPath("assets/horn.wav"))
	assert.Equal(t, "horn.wav", cleanAssetPath("/srv/game/assets/horn.wav"))
	assert.Equal(t, "horn.wav", cleanAssetPath("/tmp/horn.wav"))
	assert.Equal(t, "", cleanAssetPath(""))
}
