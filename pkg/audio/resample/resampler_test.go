// ABOUTME: Tests for the linear resampler
// ABOUTME: Covers passthrough, rate ratios and chunk boundary carry
package resample

import "testing"

func TestPassthrough(t *testing.T) {
	r := New(48000, 48000, 2)
	in := []int16{1, 2, 3, 4}
	out := r.Resample(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(out))
	}
	if &out[0] != &in[0] {
		t.Error("expected passthrough to return the input slice")
	}
}

func TestDownsampleHalvesFrames(t *testing.T) {
	r := New(48000, 24000, 1)
	in := make([]int16, 1000)
	for i := range in {
		in[i] = int16(i)
	}
	out := r.Resample(in)
	// positions 0, 2, 4 ... 998
	if len(out) != 500 {
		t.Fatalf("expected 500 samples, got %d", len(out))
	}
	for i, s := range out {
		if s != int16(i*2) {
			t.Fatalf("sample %d: expected %d, got %d", i, i*2, s)
		}
	}
}

func TestUpsampleInterpolates(t *testing.T) {
	r := New(24000, 48000, 1)
	out := r.Resample([]int16{0, 100, 200})
	expected := []int16{0, 50, 100, 150}
	if len(out) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(out))
	}
	for i := range expected {
		if out[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], out[i])
		}
	}
}

func TestChunkBoundaryCarry(t *testing.T) {
	whole := New(24000, 48000, 2)
	ramp := make([]int16, 0, 40)
	for i := 0; i < 20; i++ {
		ramp = append(ramp, int16(i*10), int16(-i*10))
	}
	expected := append([]int16(nil), whole.Resample(ramp)...)

	chunked := New(24000, 48000, 2)
	var got []int16
	got = append(got, chunked.Resample(ramp[:10])...)
	got = append(got, chunked.Resample(ramp[10:])...)

	if len(got) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("sample %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestReset(t *testing.T) {
	r := New(24000, 48000, 1)
	r.Resample([]int16{100, 200, 300})
	r.Reset()
	out := r.Resample([]int16{0, 10})
	if len(out) != 2 || out[0] != 0 || out[1] != 5 {
		t.Errorf("expected [0 5] after reset, got %v", out)
	}
}

func TestOutputSamplesNeeded(t *testing.T) {
	r := New(24000, 48000, 2)
	got := r.OutputSamplesNeeded(2400 * 2)
	if got != 4800*2 {
		t.Errorf("expected %d, got %d", 4800*2, got)
	}
}
