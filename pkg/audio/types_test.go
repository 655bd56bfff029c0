// ABOUTME: Tests for audio types
// ABOUTME: Tests descriptor validation, frame math and sample conversion
package audio

import (
	"errors"
	"testing"
)

func TestFormatDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  FormatDescriptor
		wantErr bool
	}{
		{"f32", FormatDescriptor{Float, 32, 2}, false},
		{"f64", FormatDescriptor{Float, 64, 1}, false},
		{"s8", FormatDescriptor{SignedInt, 8, 2}, false},
		{"s16", FormatDescriptor{SignedInt, 16, 2}, false},
		{"s32", FormatDescriptor{SignedInt, 32, 6}, false},
		{"u8", FormatDescriptor{UnsignedInt, 8, 1}, false},
		{"u16", FormatDescriptor{UnsignedInt, 16, 2}, false},
		{"u32", FormatDescriptor{UnsignedInt, 32, 2}, false},
		{"s24", FormatDescriptor{SignedInt, 24, 2}, true},
		{"s64", FormatDescriptor{SignedInt, 64, 2}, true},
		{"u64", FormatDescriptor{UnsignedInt, 64, 2}, true},
		{"f16", FormatDescriptor{Float, 16, 2}, true},
		{"no channels", FormatDescriptor{SignedInt, 16, 0}, true},
		{"unknown kind", FormatDescriptor{SampleKind(9), 16, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFrameSize(t *testing.T) {
	f := FormatDescriptor{Kind: SignedInt, BitsPerSample: 16, Channels: 2}
	if f.FrameSize() != 4 {
		t.Errorf("expected frame size 4, got %d", f.FrameSize())
	}

	f = FormatDescriptor{Kind: Float, BitsPerSample: 64, Channels: 6}
	if f.FrameSize() != 48 {
		t.Errorf("expected frame size 48, got %d", f.FrameSize())
	}
}

func TestMidpoint(t *testing.T) {
	tests := []struct {
		bits     int
		expected float64
	}{
		{8, 127},
		{16, 32767},
		{32, 2147483647},
	}

	for _, tt := range tests {
		f := FormatDescriptor{Kind: UnsignedInt, BitsPerSample: tt.bits, Channels: 1}
		if got := f.Midpoint(); got != tt.expected {
			t.Errorf("u%d: expected midpoint %v, got %v", tt.bits, tt.expected, got)
		}
	}

	signed := FormatDescriptor{Kind: SignedInt, BitsPerSample: 16, Channels: 1}
	if signed.Midpoint() != 0 {
		t.Errorf("expected signed midpoint 0, got %v", signed.Midpoint())
	}
}

func TestRawBufferWellFormed(t *testing.T) {
	format := FormatDescriptor{Kind: SignedInt, BitsPerSample: 16, Channels: 2}

	if !(RawBuffer{Data: make([]byte, 8), Format: format}).WellFormed() {
		t.Error("expected 8 bytes of s16 stereo to be well formed")
	}
	if (RawBuffer{Data: make([]byte, 6), Format: format}).WellFormed() {
		t.Error("expected 6 bytes of s16 stereo to be malformed")
	}
	if got := (RawBuffer{Data: make([]byte, 10), Format: format}).Frames(); got != 2 {
		t.Errorf("expected 2 whole frames, got %d", got)
	}
}

func TestUnitToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"full positive", 1, 32767},
		{"full negative", -1, -32768},
		{"clip positive", 1.5, 32767},
		{"clip negative", -2, -32768},
		{"half", 0.5, 16383},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnitToInt16(tt.input); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestToUnitUnsignedSilence(t *testing.T) {
	f := FormatDescriptor{Kind: UnsignedInt, BitsPerSample: 8, Channels: 1}
	if got := ToUnit(127, f); got != 0 {
		t.Errorf("expected u8 midpoint to map to 0, got %v", got)
	}
}

func TestFormatString(t *testing.T) {
	f := FormatDescriptor{Kind: SignedInt, BitsPerSample: 16, Channels: 2}
	if f.String() != "s16le stereo" {
		t.Errorf("unexpected format string %q", f.String())
	}
}
