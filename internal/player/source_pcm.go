// ABOUTME: WAV and AIFF sources backed by go-audio
// ABOUTME: Re-encodes decoded int samples to their native width
package player

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/shampuan/Jingle-Box/pkg/audio"
)

const wavFormatIEEEFloat = 3

var (
	errInvalidWAV  = errors.New("not a valid wav file")
	errInvalidAIFF = errors.New("not a valid aiff file")
)

// pcmReader is the part of the go-audio decoders a source needs
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type pcmSource struct {
	file       *os.File
	decoder    pcmReader
	format     audio.FormatDescriptor
	sampleRate int
	shift      uint
	intBuf     *goaudio.IntBuffer
}

func openWAV(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, errInvalidWAV
	}
	decoder.ReadInfo()

	format, shift, err := wavFormat(int(decoder.WavAudioFormat), int(decoder.BitDepth), int(decoder.NumChans))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &pcmSource{
		file:       f,
		decoder:    decoder,
		format:     format,
		sampleRate: int(decoder.SampleRate),
		shift:      shift,
	}, nil
}

// wavFormat maps a WAV header to the native buffer format
func wavFormat(audioFormat, bitDepth, channels int) (audio.FormatDescriptor, uint, error) {
	format := audio.FormatDescriptor{Channels: channels}

	if audioFormat == wavFormatIEEEFloat {
		if bitDepth != 32 {
			return format, 0, fmt.Errorf("%w: %d-bit float wav", audio.ErrUnsupportedFormat, bitDepth)
		}
		format.Kind = audio.Float
		format.BitsPerSample = 32
		return format, 0, nil
	}

	switch bitDepth {
	case 8:
		format.Kind = audio.UnsignedInt
		format.BitsPerSample = 8
		return format, 0, nil
	default:
		format.Kind = audio.SignedInt
		return signedFormat(format, bitDepth)
	}
}

func openAIFF(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, errInvalidAIFF
	}
	decoder.ReadInfo()

	info := decoder.Format()
	if info == nil {
		f.Close()
		return nil, errInvalidAIFF
	}

	format, shift, err := signedFormat(
		audio.FormatDescriptor{Kind: audio.SignedInt, Channels: info.NumChannels},
		int(decoder.BitDepth))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &pcmSource{
		file:       f,
		decoder:    decoder,
		format:     format,
		sampleRate: info.SampleRate,
		shift:      shift,
	}, nil
}

// signedFormat picks the signed width for bitDepth. 24-bit samples are
// left-justified into 32.
func signedFormat(format audio.FormatDescriptor, bitDepth int) (audio.FormatDescriptor, uint, error) {
	switch bitDepth {
	case 8, 16, 32:
		format.BitsPerSample = bitDepth
		return format, 0, nil
	case 24:
		format.BitsPerSample = 32
		return format, 8, nil
	}
	return format, 0, fmt.Errorf("%w: %d-bit pcm", audio.ErrUnsupportedFormat, bitDepth)
}

func (s *pcmSource) Format() audio.FormatDescriptor { return s.format }
func (s *pcmSource) SampleRate() int               { return s.sampleRate }
func (s *pcmSource) Close() error                  { return s.file.Close() }

func (s *pcmSource) Read(p []byte) (int, error) {
	sampleSize := s.format.SampleSize()
	frameSize := s.format.FrameSize()
	frames := len(p) / frameSize
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	want := frames * s.format.Channels
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, want)}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.decoder.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("pcm read failed: %w", err)
	}
	n -= n % s.format.Channels
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		putInt(p[i*sampleSize:], v, s.format, s.shift)
	}
	return n * sampleSize, nil
}
