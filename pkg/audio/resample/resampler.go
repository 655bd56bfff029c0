// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used to bring decoded sounds to the output device rate
package resample

// Resampler performs linear interpolation to convert between sample rates.
// The last input frame of each chunk is carried into the next one so chunk
// boundaries interpolate seamlessly.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
	lastSample []int16 // one sample per channel
	hasLast    bool
	out        []int16
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		lastSample: make([]int16, channels),
	}
}

// Passthrough reports whether input and output rates match
func (r *Resampler) Passthrough() bool {
	return r.inputRate == r.outputRate
}

// Resample converts interleaved input at inputRate to interleaved output at
// outputRate. The returned slice is reused by the next call.
func (r *Resampler) Resample(input []int16) []int16 {
	if r.Passthrough() || len(input) == 0 {
		return input
	}

	inputFrames := len(input) / r.channels
	total := inputFrames
	if r.hasLast {
		total++
	}

	r.out = r.out[:0]
	for {
		idx := int(r.position)
		// Need frame idx+1 to interpolate
		if idx+1 >= total {
			break
		}

		frac := r.position - float64(idx)
		for ch := 0; ch < r.channels; ch++ {
			s1 := float64(r.frame(input, idx, ch))
			s2 := float64(r.frame(input, idx+1, ch))
			r.out = append(r.out, int16(s1*(1.0-frac)+s2*frac))
		}

		r.position += r.ratio
	}

	// The final frame becomes frame 0 of the next chunk
	r.position -= float64(total - 1)
	copy(r.lastSample, input[(inputFrames-1)*r.channels:inputFrames*r.channels])
	r.hasLast = true

	return r.out
}

// frame returns channel ch of frame idx, counting the carried frame first
func (r *Resampler) frame(input []int16, idx, ch int) int16 {
	if r.hasLast {
		if idx == 0 {
			return r.lastSample[ch]
		}
		idx--
	}
	return input[idx*r.channels+ch]
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
	r.hasLast = false
	for i := range r.lastSample {
		r.lastSample[i] = 0
	}
}

// OutputSamplesNeeded estimates how many output samples input samples produce
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}
