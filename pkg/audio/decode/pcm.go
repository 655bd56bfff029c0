// ABOUTME: PCM buffer decoder
// ABOUTME: Decodes float, signed and unsigned little-endian PCM to float64 samples
package decode

import (
	"encoding/binary"
	"math"

	"github.com/shampuan/Jingle-Box/pkg/audio"
)

// Decoder decodes raw PCM buffers. It keeps its output slice between calls,
// so the returned samples are only valid until the next Decode.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	samples []float64
}

// Decode converts raw bytes to interleaved samples, unmodified in scale
func (d *Decoder) Decode(raw []byte, format audio.FormatDescriptor) ([]float64, error) {
	if err := checkBuffer(raw, format); err != nil {
		return nil, err
	}

	size := format.SampleSize()
	numSamples := len(raw) / size
	if cap(d.samples) < numSamples {
		d.samples = make([]float64, numSamples)
	}
	samples := d.samples[:numSamples]

	le := binary.LittleEndian
	switch format.Kind {
	case audio.Float:
		if size == 4 {
			for i := range samples {
				samples[i] = float64(math.Float32frombits(le.Uint32(raw[i*4:])))
			}
		} else {
			for i := range samples {
				samples[i] = math.Float64frombits(le.Uint64(raw[i*8:]))
			}
		}
	case audio.SignedInt:
		switch size {
		case 1:
			for i := range samples {
				samples[i] = float64(int8(raw[i]))
			}
		case 2:
			for i := range samples {
				samples[i] = float64(int16(le.Uint16(raw[i*2:])))
			}
		case 4:
			for i := range samples {
				samples[i] = float64(int32(le.Uint32(raw[i*4:])))
			}
		}
	case audio.UnsignedInt:
		switch size {
		case 1:
			for i := range samples {
				samples[i] = float64(raw[i])
			}
		case 2:
			for i := range samples {
				samples[i] = float64(le.Uint16(raw[i*2:]))
			}
		case 4:
			for i := range samples {
				samples[i] = float64(le.Uint32(raw[i*4:]))
			}
		}
	}

	return samples, nil
}
