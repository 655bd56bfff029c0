// ABOUTME: Audio output interface tests
// ABOUTME: Verifies Output implementation and software volume
package output

import (
	"testing"
)

func TestOtoImplementsOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
}

func TestNewOto(t *testing.T) {
	out := NewOto()
	if out == nil {
		t.Fatal("NewOto returned nil")
	}
	if out.(*Oto).Volume() != 100 {
		t.Errorf("expected default volume 100, got %d", out.(*Oto).Volume())
	}
}

func TestWriteBeforeOpen(t *testing.T) {
	out := NewOto()
	if err := out.Write([]int16{1, 2}); err == nil {
		t.Error("expected error writing to an unopened output")
	}
}

func TestApplyVolume(t *testing.T) {
	tests := []struct {
		name     string
		volume   int
		input    int16
		expected int16
	}{
		{"full", 100, 1000, 1000},
		{"quarter", 25, 1000, 250},
		{"mute", 0, -1000, 0},
		{"half negative", 50, -32768, -16384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyVolume([]int16{tt.input}, tt.volume)
			if got[0] != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got[0])
			}
		})
	}
}

func TestClampVolume(t *testing.T) {
	if clampVolume(150) != 100 {
		t.Error("expected volume above 100 to clamp")
	}
	if clampVolume(-3) != 0 {
		t.Error("expected negative volume to clamp to 0")
	}
}
