package channel

import "errors"

var (
	ErrNoLoader = errors.New("channel: no clip loader")
	ErrNoClip   = errors.New("channel: no clip assigned")
)

// Device is the host playback handle for one loaded clip. Calls are assumed
// to be non-blocking.
type Device interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
	// Length reports the clip length in seconds, or 0 when unknown.
	Length() float64
	Close() error
}

// Loader resolves a clip name into a ready-to-play Device.
type Loader interface {
	Load(clip string) (Device, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(clip string) (Device, error)

func (f LoaderFunc) Load(clip string) (Device, error) {
	return f(clip)
}
