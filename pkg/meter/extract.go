// ABOUTME: Peak extraction from decoded samples
// ABOUTME: Deinterleaves left/right and normalizes the peak amplitude per channel
package meter

import (
	"math"

	"github.com/shampuan/Jingle-Box/pkg/audio"
)

// Peaks holds the normalized peak per displayed channel
type Peaks struct {
	Left  float64
	Right float64
}

// Extract computes the normalized peak of each displayed channel.
// With two or more channels only the first two are measured; any other
// channel count collapses to one peak applied to both sides.
func Extract(samples []float64, format audio.FormatDescriptor) Peaks {
	maxAmp := format.MaxAmplitude()
	if maxAmp == 0 {
		return Peaks{}
	}
	mid := format.Midpoint()

	if format.Channels >= 2 {
		var left, right float64
		step := format.Channels
		for i := 0; i+1 < len(samples); i += step {
			left = max(left, magnitude(samples[i], mid))
			right = max(right, magnitude(samples[i+1], mid))
		}
		return Peaks{
			Left:  normalize(left, maxAmp),
			Right: normalize(right, maxAmp),
		}
	}

	var peak float64
	for _, s := range samples {
		peak = max(peak, magnitude(s, mid))
	}
	level := normalize(peak, maxAmp)
	return Peaks{Left: level, Right: level}
}

func magnitude(sample, mid float64) float64 {
	v := math.Abs(sample - mid)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func normalize(peak, maxAmp float64) float64 {
	return clamp(peak / maxAmp)
}

// clamp limits v to [0, 1]; NaN maps to 0
func clamp(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
