// Package speed maps vehicle speed tiers to engine volumes.
package speed

import (
	"fmt"
	"strings"
)

// Class is a discrete speed tier.
type Class int

const (
	Idle Class = iota
	Normal
	Boost

	classCount
)

// Classes lists every known tier in order.
var Classes = []Class{Idle, Normal, Boost}

var classNames = [...]string{
	Idle:   "idle",
	Normal: "normal",
	Boost:  "boost",
}

// Valid reports whether c is one of the known tiers.
func (c Class) Valid() bool {
	return c >= 0 && c < classCount
}

func (c Class) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass resolves a tier from its case-insensitive name.
func ParseClass(name string) (Class, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range Classes {
		if classNames[c] == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("speed: unknown class %q", name)
}

// Classifier buckets a numeric speed into a tier. Speeds below NormalAt are
// Idle, speeds at or above BoostAt are Boost, everything else is Normal.
type Classifier struct {
	NormalAt float64
	BoostAt  float64
}

// DefaultClassifier is used when no thresholds are configured.
var DefaultClassifier = Classifier{NormalAt: 5, BoostAt: 25}

// Classify returns the tier for speed. The magnitude is used so reversing
// counts the same as driving forward.
func (c Classifier) Classify(speed float64) Class {
	if speed < 0 {
		speed = -speed
	}
	switch {
	case speed >= c.BoostAt:
		return Boost
	case speed >= c.NormalAt:
		return Normal
	default:
		return Idle
	}
}
