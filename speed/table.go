package speed

import (
	"github.com/milk9111/soundctl/fade"
	"github.com/milk9111/soundctl/logging"
	"github.com/sirupsen/logrus"
)

// FallbackVolume is returned for lookups of unknown tiers.
const FallbackVolume = 0.5

var defaultVolumes = [classCount]float64{
	Idle:   0.3,
	Normal: 0.6,
	Boost:  1.0,
}

// DefaultVolume returns the volume used for c when it is not configured, or
// FallbackVolume for an unknown tier.
func DefaultVolume(c Class) float64 {
	if !c.Valid() {
		return FallbackVolume
	}
	return defaultVolumes[c]
}

var log = logging.For("speed")

// Table is a total mapping from tier to volume.
type Table struct {
	volumes [classCount]float64
}

// NewTable builds a table from defaults overlaid with entries. Entries for
// unknown tiers are reported and skipped; volumes are clamped to [0,1].
func NewTable(entries map[Class]float64) *Table {
	t := &Table{volumes: defaultVolumes}
	for c, v := range entries {
		t.Update(c, v)
	}
	return t
}

// Lookup returns the volume for c. Unknown tiers yield FallbackVolume.
func (t *Table) Lookup(c Class) float64 {
	if t == nil {
		log.Warn("lookup on nil speed table")
		return FallbackVolume
	}
	if !c.Valid() {
		log.WithFields(logrus.Fields{
			"class":    int(c),
			"fallback": FallbackVolume,
		}).Warn("unknown speed class")
		return FallbackVolume
	}
	return t.volumes[c]
}

// Update sets the volume for a single tier.
func (t *Table) Update(c Class, volume float64) {
	if t == nil {
		return
	}
	if !c.Valid() {
		log.WithFields(logrus.Fields{
			"class":  int(c),
			"volume": volume,
		}).Warn("ignoring update for unknown speed class")
		return
	}
	t.volumes[c] = fade.Clamp01(volume)
}

// Snapshot copies the current mapping.
func (t *Table) Snapshot() map[Class]float64 {
	out := make(map[Class]float64, len(Classes))
	if t == nil {
		return out
	}
	for _, c := range Classes {
		out[c] = t.volumes[c]
	}
	return out
}
