// ABOUTME: MP3 source backed by go-mp3
// ABOUTME: Yields signed 16-bit little-endian stereo frames
package player

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/shampuan/Jingle-Box/pkg/audio"
)

// go-mp3 always decodes to stereo S16LE
var mp3Format = audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2}

type mp3Source struct {
	file    *os.File
	decoder *mp3.Decoder
}

func openMP3(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	return &mp3Source{file: f, decoder: decoder}, nil
}

func (s *mp3Source) Format() audio.FormatDescriptor { return mp3Format }
func (s *mp3Source) SampleRate() int               { return s.decoder.SampleRate() }
func (s *mp3Source) Close() error                  { return s.file.Close() }

func (s *mp3Source) Read(p []byte) (int, error) {
	return readFrames(s.decoder, p, mp3Format.FrameSize())
}
