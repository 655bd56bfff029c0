// ABOUTME: Sound file sources producing raw native-format PCM
// ABOUTME: Selects a container decoder by file extension
package player

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shampuan/Jingle-Box/pkg/audio"
)

// ErrUnsupportedFile is returned for extensions no source can read
var ErrUnsupportedFile = errors.New("unsupported sound file")

// Source yields raw interleaved PCM in the format it reports
type Source interface {
	// Format describes the bytes returned by Read
	Format() audio.FormatDescriptor

	// SampleRate is the source rate in Hz
	SampleRate() int

	// Read fills p with whole frames and returns io.EOF once exhausted
	Read(p []byte) (int, error)

	// Close releases the underlying file
	Close() error
}

// Extensions lists the file extensions Open accepts
var Extensions = []string{".mp3", ".wav", ".aif", ".aiff", ".ogg", ".flac", ".opus"}

// Supported reports whether path has an extension Open accepts
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Open opens path with the source matching its extension
func Open(path string) (Source, error) {
	var (
		src Source
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		src, err = openMP3(path)
	case ".wav":
		src, err = openWAV(path)
	case ".aif", ".aiff":
		src, err = openAIFF(path)
	case ".ogg":
		src, err = openOgg(path)
	case ".flac":
		src, err = openFLAC(path)
	case ".opus":
		src, err = openOpus(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := src.Format().Validate(); err != nil {
		src.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return src, nil
}

// readFrames fills p with as many whole frames as r yields.
// A trailing partial frame is dropped.
func readFrames(r io.Reader, p []byte, frameSize int) (int, error) {
	want := len(p) - len(p)%frameSize
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	n, err := io.ReadFull(r, p[:want])
	n -= n % frameSize

	switch {
	case err == io.ErrUnexpectedEOF && n > 0:
		return n, nil
	case err == io.ErrUnexpectedEOF, err == io.EOF:
		return 0, io.EOF
	}
	return n, err
}

// putInt writes go-audio style int samples as little-endian bytes in
// the given format. shift left-justifies narrower sources.
func putInt(dst []byte, v int, format audio.FormatDescriptor, shift uint) {
	switch format.Kind {
	case audio.UnsignedInt:
		dst[0] = byte(v)
	case audio.SignedInt:
		switch format.BitsPerSample {
		case 8:
			dst[0] = byte(int8(v << shift))
		case 16:
			u := uint16(int16(v << shift))
			dst[0], dst[1] = byte(u), byte(u>>8)
		case 32:
			u := uint32(int32(v << shift))
			dst[0], dst[1], dst[2], dst[3] = byte(u), byte(u>>8), byte(u>>16), byte(u>>24)
		}
	case audio.Float:
		// 32-bit IEEE samples arrive as their raw bit pattern
		u := uint32(v)
		dst[0], dst[1], dst[2], dst[3] = byte(u), byte(u>>8), byte(u>>16), byte(u>>24)
	}
}
