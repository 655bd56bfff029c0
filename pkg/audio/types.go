// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM format descriptors and raw sample buffers
package audio

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for sample kind / bit width combinations
// outside the supported matrix.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// SampleKind is the numeric encoding of a single PCM sample
type SampleKind int

const (
	Float SampleKind = iota
	SignedInt
	UnsignedInt
)

// String returns the short name used in logs and the UI
func (k SampleKind) String() string {
	switch k {
	case Float:
		return "float"
	case SignedInt:
		return "signed"
	case UnsignedInt:
		return "unsigned"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FormatDescriptor describes the encoding of a raw buffer.
// Samples are always little-endian and interleaved by channel.
type FormatDescriptor struct {
	Kind          SampleKind
	BitsPerSample int
	Channels      int
}

// Validate reports whether the descriptor is in the supported matrix
func (f FormatDescriptor) Validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	if f.MaxAmplitude() == 0 {
		return fmt.Errorf("%w: %s %d-bit", ErrUnsupportedFormat, f.Kind, f.BitsPerSample)
	}
	return nil
}

// SampleSize returns the size of one sample in bytes
func (f FormatDescriptor) SampleSize() int {
	return f.BitsPerSample / 8
}

// FrameSize returns the size of one frame (one sample per channel) in bytes
func (f FormatDescriptor) FrameSize() int {
	return f.SampleSize() * f.Channels
}

// MaxAmplitude returns the full-scale value used for normalization,
// or 0 when the descriptor is not supported.
func (f FormatDescriptor) MaxAmplitude() float64 {
	switch f.Kind {
	case Float:
		switch f.BitsPerSample {
		case 32, 64:
			return 1.0
		}
	case SignedInt:
		switch f.BitsPerSample {
		case 8:
			return 127
		case 16:
			return 32767
		case 32:
			return 2147483647
		}
	case UnsignedInt:
		switch f.BitsPerSample {
		case 8:
			return 255
		case 16:
			return 65535
		case 32:
			return 4294967295
		}
	}
	return 0
}

// Midpoint returns the value representing silence for unsigned formats,
// floor(MaxAmplitude/2). It is 0 for signed and float formats.
func (f FormatDescriptor) Midpoint() float64 {
	if f.Kind != UnsignedInt {
		return 0
	}
	return float64(uint64(f.MaxAmplitude()) / 2)
}

// String renders the descriptor like "s16le stereo"
func (f FormatDescriptor) String() string {
	prefix := "s"
	switch f.Kind {
	case Float:
		prefix = "f"
	case UnsignedInt:
		prefix = "u"
	}
	return fmt.Sprintf("%s%dle %s", prefix, f.BitsPerSample, ChannelName(f.Channels))
}

// RawBuffer is a block of undecoded PCM bytes plus its encoding.
// Data must not be modified once the buffer is handed to a consumer.
type RawBuffer struct {
	Data   []byte
	Format FormatDescriptor
}

// Frames returns the number of whole frames in the buffer
func (b RawBuffer) Frames() int {
	size := b.Format.FrameSize()
	if size <= 0 {
		return 0
	}
	return len(b.Data) / size
}

// WellFormed reports whether the byte length is a multiple of the frame size
func (b RawBuffer) WellFormed() bool {
	size := b.Format.FrameSize()
	return size > 0 && len(b.Data)%size == 0
}

// ChannelName returns a human readable channel layout name
func ChannelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// ToUnit maps a decoded sample to the [-1, 1] range for playback.
// Unsigned samples are centered on their midpoint.
func ToUnit(sample float64, f FormatDescriptor) float32 {
	switch f.Kind {
	case Float:
		return float32(sample)
	case UnsignedInt:
		mid := f.Midpoint()
		return float32((sample - mid) / (mid + 1))
	default:
		return float32(sample / (f.MaxAmplitude() + 1))
	}
}

// UnitToInt16 converts a [-1, 1] sample to 16-bit with clipping
func UnitToInt16(v float32) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	if v >= 0 {
		return int16(v * 32767)
	}
	return int16(v * 32768)
}
