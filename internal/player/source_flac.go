// ABOUTME: FLAC source backed by mewkiz/flac
// ABOUTME: Interleaves decoded subframes into signed little-endian frames
package player

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/shampuan/Jingle-Box/pkg/audio"
)

type flacSource struct {
	stream  *flac.Stream
	format  audio.FormatDescriptor
	shift   uint
	pending []byte
}

func openFLAC(path string) (Source, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flac stream: %w", err)
	}

	format, shift := flacFormat(int(stream.Info.BitsPerSample), int(stream.Info.NChannels))
	return &flacSource{stream: stream, format: format, shift: shift}, nil
}

// flacFormat picks the narrowest signed width holding bps, left-justified
func flacFormat(bps, channels int) (audio.FormatDescriptor, uint) {
	format := audio.FormatDescriptor{Kind: audio.SignedInt, Channels: channels}
	switch {
	case bps <= 8:
		format.BitsPerSample = 8
	case bps <= 16:
		format.BitsPerSample = 16
	default:
		format.BitsPerSample = 32
	}
	return format, uint(format.BitsPerSample - bps)
}

func (s *flacSource) Format() audio.FormatDescriptor { return s.format }
func (s *flacSource) SampleRate() int               { return int(s.stream.Info.SampleRate) }
func (s *flacSource) Close() error                  { return s.stream.Close() }

func (s *flacSource) Read(p []byte) (int, error) {
	frameSize := s.format.FrameSize()
	want := len(p) - len(p)%frameSize
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	for len(s.pending) < want {
		frame, err := s.stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("flac frame decode failed: %w", err)
		}
		s.pending = s.appendFrame(s.pending, frame.Subframes[0].NSamples, func(ch, i int) int32 {
			return frame.Subframes[ch].Samples[i]
		})
	}

	if len(s.pending) == 0 {
		return 0, io.EOF
	}

	n := copy(p[:want], s.pending)
	s.pending = s.pending[:copy(s.pending, s.pending[n:])]
	return n, nil
}

// appendFrame interleaves one decoded FLAC block onto dst
func (s *flacSource) appendFrame(dst []byte, samples int, at func(ch, i int) int32) []byte {
	sampleSize := s.format.SampleSize()
	var tmp [4]byte
	for i := 0; i < samples; i++ {
		for ch := 0; ch < s.format.Channels; ch++ {
			putInt(tmp[:], int(at(ch, i)), s.format, s.shift)
			dst = append(dst, tmp[:sampleSize]...)
		}
	}
	return dst
}
