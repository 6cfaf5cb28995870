// Package channeltest provides in-memory devices for exercising channels
// without an audio backend.
package channeltest

import (
	"fmt"

	"github.com/milk9111/soundctl/channel"
)

// Device records every call made by a channel.
type Device struct {
	Clip    string
	Len     float64
	Playing bool
	Volume  float64
	Closed  bool

	PlayCalls   int
	PauseCalls  int
	RewindCalls int
	VolumeCalls int
}

func (d *Device) Play() {
	d.PlayCalls++
	d.Playing = true
}

func (d *Device) Pause() {
	d.PauseCalls++
	d.Playing = false
}

func (d *Device) Rewind() error {
	d.RewindCalls++
	return nil
}

func (d *Device) IsPlaying() bool { return d.Playing }

func (d *Device) SetVolume(volume float64) {
	d.VolumeCalls++
	d.Volume = volume
}

func (d *Device) Length() float64 { return d.Len }

func (d *Device) Close() error {
	d.Closed = true
	d.Playing = false
	return nil
}

// Finish simulates the clip running out.
func (d *Device) Finish() { d.Playing = false }

// Loader hands out Devices for the clips it knows about, keyed by name.
type Loader struct {
	Lengths map[string]float64
	Devices map[string][]*Device
}

// NewLoader creates a loader serving the given clips and lengths.
func NewLoader(lengths map[string]float64) *Loader {
	return &Loader{
		Lengths: lengths,
		Devices: make(map[string][]*Device),
	}
}

func (l *Loader) Load(clip string) (channel.Device, error) {
	length, ok := l.Lengths[clip]
	if !ok {
		return nil, fmt.Errorf("channeltest: unknown clip %q", clip)
	}
	d := &Device{Clip: clip, Len: length}
	l.Devices[clip] = append(l.Devices[clip], d)
	return d, nil
}

// Last returns the most recently loaded device for clip.
func (l *Loader) Last(clip string) *Device {
	ds := l.Devices[clip]
	if len(ds) == 0 {
		return nil
	}
	return ds[len(ds)-1]
}

// Count returns the number of devices ever loaded, over all clips.
func (l *Loader) Count() int {
	n := 0
	for _, ds := range l.Devices {
		n += len(ds)
	}
	return n
}
