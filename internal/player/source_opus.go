// ABOUTME: Ogg Opus source backed by libopusfile
// ABOUTME: Yields signed 16-bit frames at the fixed 48kHz Opus rate
package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shampuan/Jingle-Box/pkg/audio"
	"gopkg.in/hraban/opus.v2"
)

// opusfile always decodes at 48kHz
const opusSampleRate = 48000

var errNoOpusHead = errors.New("missing OpusHead packet")

type opusSource struct {
	stream *opus.Stream
	format audio.FormatDescriptor
	pcm    []int16
}

func openOpus(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	channels, err := opusChannels(data)
	if err != nil {
		return nil, err
	}

	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create opus stream: %w", err)
	}

	return &opusSource{
		stream: stream,
		format: audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: channels},
	}, nil
}

// opusChannels reads the channel count from the OpusHead identification header
func opusChannels(data []byte) (int, error) {
	idx := bytes.Index(data, []byte("OpusHead"))
	if idx < 0 || idx+9 >= len(data) {
		return 0, errNoOpusHead
	}
	channels := int(data[idx+9])
	if channels == 0 {
		return 0, fmt.Errorf("%w: zero channels", audio.ErrUnsupportedFormat)
	}
	return channels, nil
}

func (s *opusSource) Format() audio.FormatDescriptor { return s.format }
func (s *opusSource) SampleRate() int               { return opusSampleRate }
func (s *opusSource) Close() error                  { return s.stream.Close() }

func (s *opusSource) Read(p []byte) (int, error) {
	want := len(p) / s.format.FrameSize() * s.format.Channels
	if want == 0 {
		return 0, io.ErrShortBuffer
	}
	if cap(s.pcm) < want {
		s.pcm = make([]int16, want)
	}
	s.pcm = s.pcm[:want]

	// Read returns samples per channel
	frames, err := s.stream.Read(s.pcm)
	if frames == 0 {
		if err == nil || err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("opus read failed: %w", err)
	}

	n := frames * s.format.Channels
	for i, v := range s.pcm[:n] {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(v))
	}
	return n * 2, nil
}
