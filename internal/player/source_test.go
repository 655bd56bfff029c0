// ABOUTME: Tests for sound file sources
// ABOUTME: Round-trips WAV and AIFF files and checks format mapping
package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/shampuan/Jingle-Box/pkg/audio"
	"github.com/shampuan/Jingle-Box/pkg/audio/decode"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"intro.mp3", true},
		{"INTRO.MP3", true},
		{"bell.wav", true},
		{"horn.aiff", true},
		{"horn.aif", true},
		{"drum.ogg", true},
		{"hit.flac", true},
		{"voice.opus", true},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.expected {
			t.Errorf("Supported(%q): expected %v, got %v", tt.path, tt.expected, got)
		}
	}
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open("notes.txt")
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestReadFrames(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	p := make([]byte, 9)

	n, err := readFrames(r, p, 4)
	if err != nil || n != 8 {
		t.Fatalf("expected 8 bytes, got %d (%v)", n, err)
	}

	// Two bytes remain, less than one frame
	n, err = readFrames(r, p, 4)
	if err != io.EOF || n != 0 {
		t.Errorf("expected EOF, got %d (%v)", n, err)
	}

	if _, err := readFrames(r, p[:3], 4); err != io.ErrShortBuffer {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
}

func TestReadFramesPartialTail(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6})
	p := make([]byte, 8)

	n, err := readFrames(r, p, 4)
	if err != nil || n != 4 {
		t.Fatalf("expected 4 bytes, got %d (%v)", n, err)
	}
	if n, err = readFrames(r, p, 4); err != io.EOF {
		t.Errorf("expected EOF, got %d (%v)", n, err)
	}
}

func TestWavFormat(t *testing.T) {
	tests := []struct {
		name        string
		audioFormat int
		bitDepth    int
		expected    audio.FormatDescriptor
		shift       uint
		wantErr     bool
	}{
		{"u8", 1, 8, audio.FormatDescriptor{Kind: audio.UnsignedInt, BitsPerSample: 8, Channels: 2}, 0, false},
		{"s16", 1, 16, audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2}, 0, false},
		{"s24", 1, 24, audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 32, Channels: 2}, 8, false},
		{"s32", 1, 32, audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 32, Channels: 2}, 0, false},
		{"f32", 3, 32, audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 2}, 0, false},
		{"f64", 3, 64, audio.FormatDescriptor{}, 0, true},
		{"s12", 1, 12, audio.FormatDescriptor{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shift, err := wavFormat(tt.audioFormat, tt.bitDepth, 2)
			if tt.wantErr {
				if !errors.Is(err, audio.ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected || shift != tt.shift {
				t.Errorf("expected %v shift %d, got %v shift %d", tt.expected, tt.shift, got, shift)
			}
		})
	}
}

func TestFlacFormat(t *testing.T) {
	tests := []struct {
		bps   int
		bits  int
		shift uint
	}{
		{8, 8, 0},
		{12, 16, 4},
		{16, 16, 0},
		{20, 32, 12},
		{24, 32, 8},
		{32, 32, 0},
	}

	for _, tt := range tests {
		format, shift := flacFormat(tt.bps, 2)
		if format.BitsPerSample != tt.bits || shift != tt.shift {
			t.Errorf("bps %d: expected %d bits shift %d, got %d bits shift %d",
				tt.bps, tt.bits, tt.shift, format.BitsPerSample, shift)
		}
		if format.Kind != audio.SignedInt {
			t.Errorf("bps %d: expected signed samples, got %v", tt.bps, format.Kind)
		}
	}
}

func TestPutInt(t *testing.T) {
	s16 := audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 1}
	s32 := audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 32, Channels: 1}
	f32 := audio.FormatDescriptor{Kind: audio.Float, BitsPerSample: 32, Channels: 1}

	var b [4]byte
	putInt(b[:], -2, s16, 0)
	if got := int16(binary.LittleEndian.Uint16(b[:])); got != -2 {
		t.Errorf("s16: expected -2, got %d", got)
	}

	putInt(b[:], -0x123456, s32, 8)
	if got := int32(binary.LittleEndian.Uint32(b[:])); got != -0x12345600 {
		t.Errorf("s32: expected %d, got %d", -0x12345600, got)
	}

	bits := int(int32(math.Float32bits(-0.25)))
	putInt(b[:], bits, f32, 0)
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[:])); got != -0.25 {
		t.Errorf("f32: expected -0.25, got %v", got)
	}
}

func TestOpusChannels(t *testing.T) {
	head := append([]byte("OggS\x00\x02junkOpusHead"), 1, 2, 0x38, 0x01)
	got, err := opusChannels(head)
	if err != nil || got != 2 {
		t.Errorf("expected 2 channels, got %d (%v)", got, err)
	}

	if _, err := opusChannels([]byte("OggS no header")); !errors.Is(err, errNoOpusHead) {
		t.Errorf("expected errNoOpusHead, got %v", err)
	}
}

type fakeVorbis struct {
	values []float32
}

func (f *fakeVorbis) SampleRate() int { return 44100 }
func (f *fakeVorbis) Channels() int   { return 2 }

func (f *fakeVorbis) Read(p []float32) (int, error) {
	if len(f.values) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.values)
	f.values = f.values[n:]
	return n, nil
}

func TestOggSource(t *testing.T) {
	src := newOggSource(io.NopCloser(nil), &fakeVorbis{values: []float32{0.5, -0.25, 1, -1, 0.125, 0}})

	format := src.Format()
	if format.Kind != audio.Float || format.BitsPerSample != 32 || format.Channels != 2 {
		t.Fatalf("unexpected format %v", format)
	}
	if src.SampleRate() != 44100 {
		t.Errorf("expected 44100, got %d", src.SampleRate())
	}

	p := make([]byte, 16)
	n, err := src.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("expected 16 bytes, got %d (%v)", n, err)
	}
	samples, err := decode.Decode(p[:n], format)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	expected := []float64{0.5, -0.25, 1, -1}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("sample %d: expected %v, got %v", i, expected[i], samples[i])
		}
	}

	if n, err = src.Read(p); err != nil || n != 8 {
		t.Errorf("expected final 8 bytes, got %d (%v)", n, err)
	}
	if _, err = src.Read(p); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func writeWAV(t *testing.T, bitDepth int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 44100, bitDepth, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, src Source, chunk int) []float64 {
	t.Helper()
	var all []float64
	p := make([]byte, chunk*src.Format().FrameSize())
	for {
		n, err := src.Read(p)
		if n > 0 {
			samples, derr := decode.Decode(p[:n], src.Format())
			if derr != nil {
				t.Fatalf("decode failed: %v", derr)
			}
			all = append(all, samples...)
		}
		if err == io.EOF {
			return all
		}
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
	}
}

func TestWAVSource16(t *testing.T) {
	data := []int{100, -100, 32767, -32768, 0, 5}
	src, err := Open(writeWAV(t, 16, data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	if src.Format() != s16Stereo {
		t.Errorf("expected %v, got %v", s16Stereo, src.Format())
	}
	if src.SampleRate() != 44100 {
		t.Errorf("expected 44100, got %d", src.SampleRate())
	}

	got := readAll(t, src, 2)
	if len(got) != len(data) {
		t.Fatalf("expected %d samples, got %d", len(data), len(got))
	}
	for i := range data {
		if got[i] != float64(data[i]) {
			t.Errorf("sample %d: expected %d, got %v", i, data[i], got[i])
		}
	}
}

func TestWAVSource24LeftJustified(t *testing.T) {
	data := []int{0x123456, -0x123456}
	src, err := Open(writeWAV(t, 24, data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	format := src.Format()
	if format.BitsPerSample != 32 || format.Kind != audio.SignedInt {
		t.Fatalf("expected s32, got %v", format)
	}

	got := readAll(t, src, 16)
	if len(got) != 2 || got[0] != 0x12345600 || got[1] != -0x12345600 {
		t.Errorf("expected left-justified samples, got %v", got)
	}
}

func TestAIFFSource16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	data := []int{1000, -1000, 2000, -2000}
	enc := aiff.NewEncoder(f, 44100, 16, 2)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer src.Close()

	if src.Format() != s16Stereo {
		t.Errorf("expected %v, got %v", s16Stereo, src.Format())
	}
	got := readAll(t, src, 1)
	if len(got) != len(data) {
		t.Fatalf("expected %d samples, got %d", len(data), len(got))
	}
	for i := range data {
		if got[i] != float64(data[i]) {
			t.Errorf("sample %d: expected %d, got %v", i, data[i], got[i])
		}
	}
}

func TestOpenInvalidWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, errInvalidWAV) {
		t.Errorf("expected errInvalidWAV, got %v", err)
	}
}
