// ABOUTME: Peak-hold animation state machine
// ABOUTME: Holds the recent peak for a fixed time, then decays it on an external clock
package meter

import "time"

// Peak-hold timing and decay parameters
const (
	HoldDuration  = 500 * time.Millisecond
	DecayInterval = 50 * time.Millisecond
	DecayFactor   = 0.8
	DecayFloor    = 0.01
)

// Phase is the state of a peak-hold animator
type Phase int

const (
	// Idle means no countdown is running
	Idle Phase = iota
	// Holding means the held value is frozen until the hold deadline
	Holding
	// Decaying means the held value shrinks every DecayInterval
	Decaying
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Holding:
		return "holding"
	case Decaying:
		return "decaying"
	default:
		return "idle"
	}
}

// PeakHold animates the held peak of one channel.
// It never schedules anything itself: time only moves through Advance and
// the timestamps passed to Observe. Not safe for concurrent use.
type PeakHold struct {
	held     float64
	phase    Phase
	deadline time.Time
}

// Held returns the currently held value
func (p *PeakHold) Held() float64 {
	return p.held
}

// Phase returns the current phase
func (p *PeakHold) Phase() Phase {
	return p.phase
}

// Deadline returns when the next transition is due. Zero while idle.
func (p *PeakHold) Deadline() time.Time {
	return p.deadline
}

// Observe feeds a newly displayed level arriving at now.
// Callers should Advance to now first so expired deadlines are applied.
// It reports whether the held value or phase changed.
func (p *PeakHold) Observe(level float64, now time.Time) bool {
	level = clamp(level)

	if p.phase == Idle {
		// The held value follows the level even when it drops; this skips
		// the decay curve on purpose.
		changed := p.held != level
		p.held = level
		if level > 0 {
			p.phase = Holding
			p.deadline = now.Add(HoldDuration)
			changed = true
		}
		return changed
	}

	if level > p.held {
		p.held = level
		p.phase = Holding
		p.deadline = now.Add(HoldDuration)
		return true
	}

	return false
}

// Advance applies every transition due at or before now, in order.
// It reports whether the held value or phase changed.
func (p *PeakHold) Advance(now time.Time) bool {
	changed := false
	for p.phase != Idle && !now.Before(p.deadline) {
		if p.phase == Holding {
			// The first decay step lands on the hold deadline itself.
			p.phase = Decaying
		}
		p.decayStep()
		changed = true
	}
	return changed
}

func (p *PeakHold) decayStep() {
	if p.held > DecayFloor {
		p.held *= DecayFactor
		p.deadline = p.deadline.Add(DecayInterval)
		return
	}
	p.held = 0
	p.phase = Idle
	p.deadline = time.Time{}
}

// Reset returns the animator to Idle with nothing held.
// It reports whether anything changed.
func (p *PeakHold) Reset() bool {
	changed := p.held != 0 || p.phase != Idle
	p.held = 0
	p.phase = Idle
	p.deadline = time.Time{}
	return changed
}
