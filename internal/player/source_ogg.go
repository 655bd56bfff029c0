// ABOUTME: Ogg Vorbis source backed by oggvorbis
// ABOUTME: Yields 32-bit float little-endian frames
package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jfreymuth/oggvorbis"
	"github.com/shampuan/Jingle-Box/pkg/audio"
)

// vorbisReader is the part of oggvorbis.Reader a source needs
type vorbisReader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

type oggSource struct {
	file    io.Closer
	decoder vorbisReader
	format  audio.FormatDescriptor
	floats  []float32
}

func openOgg(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create vorbis decoder: %w", err)
	}

	return newOggSource(f, decoder), nil
}

func newOggSource(file io.Closer, decoder vorbisReader) *oggSource {
	return &oggSource{
		file:    file,
		decoder: decoder,
		format:  audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: decoder.Channels()},
	}
}

func (s *oggSource) Format() audio.FormatDescriptor { return s.format }
func (s *oggSource) SampleRate() int               { return s.decoder.SampleRate() }
func (s *oggSource) Close() error                  { return s.file.Close() }

func (s *oggSource) Read(p []byte) (int, error) {
	want := len(p) / s.format.FrameSize() * s.format.Channels
	if want == 0 {
		return 0, io.ErrShortBuffer
	}
	if cap(s.floats) < want {
		s.floats = make([]float32, want)
	}
	s.floats = s.floats[:want]

	// Read returns values, always a multiple of the channel count
	n, err := s.decoder.Read(s.floats)
	n -= n % s.format.Channels
	for i, v := range s.floats[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	if n == 0 {
		if err == nil || err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("vorbis read failed: %w", err)
	}
	return n * 4, nil
}
