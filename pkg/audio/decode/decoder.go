// ABOUTME: Buffer decoder errors and entry point
// ABOUTME: Turns raw PCM bytes plus a format descriptor into numeric samples
package decode

import (
	"errors"
	"fmt"

	"github.com/shampuan/Jingle-Box/pkg/audio"
)

var (
	// ErrUnsupportedFormat is returned when the descriptor is outside the supported matrix
	ErrUnsupportedFormat = audio.ErrUnsupportedFormat

	// ErrTruncatedBuffer is returned when the byte length is not a multiple of the frame size
	ErrTruncatedBuffer = errors.New("truncated buffer")
)

// Decode converts raw little-endian bytes to interleaved samples in their
// native scale. It allocates a fresh slice; use a Decoder to reuse one.
func Decode(raw []byte, format audio.FormatDescriptor) ([]float64, error) {
	var d Decoder
	return d.Decode(raw, format)
}

func checkBuffer(raw []byte, format audio.FormatDescriptor) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if len(raw)%format.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d-byte frames (%s)",
			ErrTruncatedBuffer, len(raw), format.FrameSize(), format)
	}
	return nil
}
