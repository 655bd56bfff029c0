// ABOUTME: Displayed level state per channel
// ABOUTME: Clamps incoming levels and suppresses redundant updates
package meter

// LevelState holds the level currently shown for one channel
type LevelState struct {
	value float64
}

// Set clamps v to [0, 1] and stores it. It reports false, and changes
// nothing, when the clamped value equals the stored one.
func (l *LevelState) Set(v float64) bool {
	v = clamp(v)
	if v == l.value {
		return false
	}
	l.value = v
	return true
}

// Value returns the stored level
func (l *LevelState) Value() float64 {
	return l.value
}

// Reset forces the level back to 0 and reports whether it was nonzero
func (l *LevelState) Reset() bool {
	return l.Set(0)
}
