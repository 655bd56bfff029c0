// ABOUTME: Metering engine orchestration
// ABOUTME: Runs decode, peak extraction, level state and peak hold for a stereo meter
package meter

import (
	"log"
	"sync"
	"time"

	"github.com/shampuan/Jingle-Box/pkg/audio"
	"github.com/shampuan/Jingle-Box/pkg/audio/decode"
)

// Snapshot is a read-only copy of what the meter displays
type Snapshot struct {
	LeftLevel     float64 `json:"left_level"`
	RightLevel    float64 `json:"right_level"`
	LeftPeakHold  float64 `json:"left_peak_hold"`
	RightPeakHold float64 `json:"right_peak_hold"`
}

// Stats counts buffers seen by the engine
type Stats struct {
	Processed int64
	Dropped   int64
	Ignored   int64
}

// Config holds engine configuration
type Config struct {
	// Now returns the engine clock. Defaults to time.Now.
	Now func() time.Time

	// OnChange is called with a fresh snapshot whenever a level or a held
	// peak changes. It runs after the engine lock is released, one call at a
	// time and in mutation order. It must not call back into the engine.
	OnChange func(Snapshot)
}

// Engine turns raw playback buffers into animated stereo levels.
// It is safe for concurrent use; all mutation happens under one lock.
type Engine struct {
	config Config

	mu     sync.Mutex
	active bool

	// notifyMu is taken before mu is released so OnChange calls keep the
	// order of the mutations that produced them
	notifyMu sync.Mutex

	decoder decode.Decoder
	levels  [2]LevelState
	holds   [2]PeakHold
	stats   Stats
}

// NewEngine creates an inactive engine
func NewEngine(config Config) *Engine {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Engine{config: config}
}

// PushBuffer meters one buffer from the playback pipeline.
// Buffers arriving while inactive are ignored. Malformed buffers are
// logged and dropped; the displayed levels stay as they were.
func (e *Engine) PushBuffer(buf audio.RawBuffer) {
	e.mu.Lock()
	if !e.active {
		e.stats.Ignored++
		e.mu.Unlock()
		return
	}

	samples, err := e.decoder.Decode(buf.Data, buf.Format)
	if err != nil {
		e.stats.Dropped++
		e.mu.Unlock()
		log.Printf("Dropped meter buffer: %v", err)
		return
	}
	e.stats.Processed++

	peaks := Extract(samples, buf.Format)
	now := e.config.Now()

	changed := false
	for ch, level := range [2]float64{peaks.Left, peaks.Right} {
		if !e.levels[ch].Set(level) {
			continue
		}
		changed = true
		e.holds[ch].Advance(now)
		e.holds[ch].Observe(e.levels[ch].Value(), now)
	}

	e.unlockAndNotify(changed)
}

// SetActive reports the playback state. Going inactive zeroes both levels
// and cancels any hold or decay in progress.
func (e *Engine) SetActive(active bool) {
	e.mu.Lock()
	e.active = active

	changed := false
	if !active {
		for ch := range e.levels {
			if e.levels[ch].Reset() {
				changed = true
			}
			if e.holds[ch].Reset() {
				changed = true
			}
		}
	}

	e.unlockAndNotify(changed)
}

// Tick advances both peak-hold animators to now
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()

	changed := false
	for ch := range e.holds {
		if e.holds[ch].Advance(now) {
			changed = true
		}
	}

	e.unlockAndNotify(changed)
}

// Active reports whether playback is active
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Snapshot returns the current display values
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Phases returns the peak-hold phase of the left and right channels
func (e *Engine) Phases() (left, right Phase) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.holds[0].Phase(), e.holds[1].Phase()
}

// Stats returns buffer counters
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		LeftLevel:     e.levels[0].Value(),
		RightLevel:    e.levels[1].Value(),
		LeftPeakHold:  e.holds[0].Held(),
		RightPeakHold: e.holds[1].Held(),
	}
}

// unlockAndNotify releases the lock and, if something changed, hands the
// new snapshot to OnChange outside the lock.
func (e *Engine) unlockAndNotify(changed bool) {
	if !changed || e.config.OnChange == nil {
		e.mu.Unlock()
		return
	}
	snap := e.snapshotLocked()
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()
	e.config.OnChange(snap)
}
