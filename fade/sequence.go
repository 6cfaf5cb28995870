package fade

type phaseKind int

const (
	phaseFade phaseKind = iota
	phaseHold
)

// Phase is one step of a Sequence: either a ramp between two values or a
// hold that keeps the last value for a while.
type Phase struct {
	kind     phaseKind
	from     float64
	to       float64
	duration float64
}

// Fade returns a ramp phase.
func Fade(from, to, duration float64) Phase {
	return Phase{kind: phaseFade, from: from, to: to, duration: duration}
}

// Hold returns a phase that keeps the current value for duration seconds.
func Hold(duration float64) Phase {
	return Phase{kind: phaseHold, duration: duration}
}

// IsHold reports whether the phase is a hold.
func (p Phase) IsHold() bool { return p.kind == phaseHold }

// Duration returns the phase duration.
func (p Phase) Duration() float64 { return p.duration }

// Sequence runs phases strictly one after another. Time left over when a
// phase finishes is carried into the next phase within the same Advance call,
// so large frame deltas do not add a frame of lag per phase boundary.
type Sequence struct {
	phases []Phase
	index  int
	ramp   *Ramp
	value  float64
	done   bool
}

// NewSequence builds a sequence from phases. An empty sequence is done
// immediately.
func NewSequence(phases ...Phase) *Sequence {
	s := &Sequence{phases: append([]Phase(nil), phases...)}
	s.Reset()
	return s
}

// Triangle builds the usual fade-in, hold, fade-out sequence. A negative hold
// is treated as zero.
func Triangle(start, peak, end, fadeIn, hold, fadeOut float64) *Sequence {
	if hold < 0 {
		hold = 0
	}
	return NewSequence(
		Fade(start, peak, fadeIn),
		Hold(hold),
		Fade(peak, end, fadeOut),
	)
}

// Reset rewinds the sequence to its first phase.
func (s *Sequence) Reset() {
	s.index = 0
	s.value = s.start()
	s.done = len(s.phases) == 0
	s.ramp = nil
	if !s.done {
		s.begin()
	}
}

// Advance moves the sequence forward by dt seconds. It returns the current
// value and whether every phase has finished.
func (s *Sequence) Advance(dt float64) (float64, bool) {
	if s == nil {
		return 0, true
	}
	if s.done {
		return s.value, true
	}
	if !(dt > 0) {
		dt = 0
	}

	for {
		s.value = s.ramp.Advance(dt)
		if !s.ramp.Done() {
			return s.value, false
		}
		dt = s.ramp.Overflow()
		s.index++
		if s.index >= len(s.phases) {
			s.done = true
			s.ramp = nil
			return s.value, true
		}
		s.begin()
	}
}

// Value returns the last computed value.
func (s *Sequence) Value() float64 {
	if s == nil {
		return 0
	}
	return s.value
}

// Done reports whether the sequence has finished.
func (s *Sequence) Done() bool {
	return s == nil || s.done
}

// Phase returns the index of the running phase, or len(phases) when done.
func (s *Sequence) Phase() int {
	if s == nil {
		return 0
	}
	return s.index
}

// Len returns the number of phases.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.phases)
}

// End returns the value the sequence settles on: the target of its last
// ramp phase, or the start value when it has none.
func (s *Sequence) End() float64 {
	if s == nil {
		return 0
	}
	for i := len(s.phases) - 1; i >= 0; i-- {
		if !s.phases[i].IsHold() {
			return s.phases[i].to
		}
	}
	return s.start()
}

// Duration returns the summed length of all phases, ignoring negative ones.
func (s *Sequence) Duration() float64 {
	if s == nil {
		return 0
	}
	var total float64
	for _, p := range s.phases {
		if p.duration > 0 {
			total += p.duration
		}
	}
	return total
}

func (s *Sequence) start() float64 {
	for _, p := range s.phases {
		if !p.IsHold() {
			return p.from
		}
	}
	return 0
}

func (s *Sequence) begin() {
	p := s.phases[s.index]
	if p.IsHold() {
		s.ramp = NewRamp(s.value, s.value, p.duration)
		return
	}
	s.ramp = NewRamp(p.from, p.to, p.duration)
}
