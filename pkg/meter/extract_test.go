// ABOUTME: Tests for peak extraction
// ABOUTME: Tests silence, clamping, recentering and channel layouts
package meter

import (
	"math"
	"testing"

	"github.com/shampuan/Jingle-Box/pkg/audio"
)

func TestExtractSilenceEveryFormat(t *testing.T) {
	formats := []audio.FormatDescriptor{
		{Kind: audio.Float, BitsPerSample: 32, Channels: 2},
		{Kind: audio.Float, BitsPerSample: 64, Channels: 2},
		{Kind: audio.SignedInt, BitsPerSample: 8, Channels: 2},
		{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2},
		{Kind: audio.SignedInt, BitsPerSample: 32, Channels: 1},
		{Kind: audio.UnsignedInt, BitsPerSample: 8, Channels: 2},
		{Kind: audio.UnsignedInt, BitsPerSample: 16, Channels: 1},
		{Kind: audio.UnsignedInt, BitsPerSample: 32, Channels: 2},
	}

	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			samples := make([]float64, 8*f.Channels)
			for i := range samples {
				samples[i] = f.Midpoint()
			}

			peaks := Extract(samples, f)
			if peaks.Left != 0 || peaks.Right != 0 {
				t.Errorf("expected silence to read 0/0, got %v/%v", peaks.Left, peaks.Right)
			}
		})
	}
}

func TestExtractSigned16StereoFullScale(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2}
	samples := []float64{32767, -32768, 32767, -32768, 32767, -32768}

	peaks := Extract(samples, f)
	if peaks.Left != 1.0 {
		t.Errorf("expected left 1.0, got %v", peaks.Left)
	}
	if peaks.Right != 1.0 {
		t.Errorf("expected right clamped to 1.0, got %v", peaks.Right)
	}
}

func TestExtractUnsigned8Recentered(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.UnsignedInt, BitsPerSample: 8, Channels: 2}
	samples := []float64{255, 255, 255, 255}

	peaks := Extract(samples, f)
	expected := 128.0 / 255.0
	if math.Abs(peaks.Left-expected) > 1e-12 || math.Abs(peaks.Right-expected) > 1e-12 {
		t.Errorf("expected %v on both channels, got %v/%v", expected, peaks.Left, peaks.Right)
	}
}

func TestExtractFloatClamps(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 1}

	peaks := Extract([]float64{0.2, 1.5, -0.3}, f)
	if peaks.Left != 1.0 || peaks.Right != 1.0 {
		t.Errorf("expected 1.0 on both channels, got %v/%v", peaks.Left, peaks.Right)
	}
}

func TestExtractStereoSeparatesChannels(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 2}

	peaks := Extract([]float64{0.5, 0.1, -0.25, -0.2}, f)
	if peaks.Left != 0.5 {
		t.Errorf("expected left 0.5, got %v", peaks.Left)
	}
	if peaks.Right != 0.2 {
		t.Errorf("expected right 0.2, got %v", peaks.Right)
	}
}

func TestExtractIgnoresExtraChannels(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 4}

	// L, R, C, LFE per frame; only L and R count
	samples := []float64{
		0.1, 0.2, 0.9, 0.9,
		0.3, 0.1, 1.0, 1.0,
	}

	peaks := Extract(samples, f)
	if peaks.Left != 0.3 {
		t.Errorf("expected left 0.3, got %v", peaks.Left)
	}
	if peaks.Right != 0.2 {
		t.Errorf("expected right 0.2, got %v", peaks.Right)
	}
}

func TestExtractMonoAppliesToBoth(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 8, Channels: 1}

	peaks := Extract([]float64{10, -127, 64}, f)
	if peaks.Left != 1.0 || peaks.Right != 1.0 {
		t.Errorf("expected 1.0/1.0, got %v/%v", peaks.Left, peaks.Right)
	}
}

func TestExtractNaNReadsAsSilence(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 1}

	peaks := Extract([]float64{math.NaN()}, f)
	if peaks.Left != 0 {
		t.Errorf("expected NaN to read 0, got %v", peaks.Left)
	}
}

func TestExtractEmpty(t *testing.T) {
	f := audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2}

	peaks := Extract(nil, f)
	if peaks != (Peaks{}) {
		t.Errorf("expected zero peaks, got %+v", peaks)
	}
}
