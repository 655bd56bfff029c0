// ABOUTME: Sound playback with a metering probe
// ABOUTME: Streams one cue at a time from a source to the audio output
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/shampuan/Jingle-Box/pkg/audio"
	"github.com/shampuan/Jingle-Box/pkg/audio/decode"
	"github.com/shampuan/Jingle-Box/pkg/audio/output"
	"github.com/shampuan/Jingle-Box/pkg/audio/resample"
)

const (
	DefaultOutputRate  = 48000
	DefaultVolume      = 25
	DefaultChunkFrames = 1024
	outputChannels     = 2
)

// ErrClosed is returned by Play after Close
var ErrClosed = errors.New("player closed")

// Config holds player configuration
type Config struct {
	OutputRate  int
	ChunkFrames int

	// Volume is the initial volume; zero selects DefaultVolume
	Volume int

	// Output receives stereo S16 at OutputRate
	Output output.Output

	// Open creates a source for a path; defaults to Open
	Open func(path string) (Source, error)

	// OnBuffer receives every raw buffer before it is written to the output
	OnBuffer func(buf audio.RawBuffer)

	// OnActive reports playback start and stop, including natural end of file
	OnActive func(active bool)
}

// Cue describes one playback
type Cue struct {
	ID         string
	Path       string
	Format     audio.FormatDescriptor
	SampleRate int
}

type playback struct {
	cue    Cue
	src    Source
	cancel context.CancelFunc
	done   chan struct{}
}

// Player plays one sound at a time
type Player struct {
	config Config

	// ctl serializes Play, Stop and Close
	ctl sync.Mutex

	mu      sync.Mutex
	current *playback
	// last is the most recent playback, kept after it finishes on its own
	// so the next Play waits for its inactive notification
	last       *playback
	outputOpen bool
	closed     bool
}

// New creates a player
func New(config Config) *Player {
	if config.OutputRate <= 0 {
		config.OutputRate = DefaultOutputRate
	}
	if config.ChunkFrames <= 0 {
		config.ChunkFrames = DefaultChunkFrames
	}
	if config.Volume == 0 {
		config.Volume = DefaultVolume
	}
	if config.Open == nil {
		config.Open = Open
	}
	if config.Output != nil {
		config.Output.SetVolume(config.Volume)
	}
	return &Player{config: config}
}

// Play starts path, replacing whatever is playing
func (p *Player) Play(path string) (Cue, error) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return Cue{}, ErrClosed
	}

	// Open first so a bad file leaves the current cue playing
	src, err := p.config.Open(path)
	if err != nil {
		return Cue{}, err
	}

	p.stop()

	if err := p.openOutput(); err != nil {
		src.Close()
		return Cue{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	pb := &playback{
		cue: Cue{
			ID:         uuid.New().String(),
			Path:       path,
			Format:     src.Format(),
			SampleRate: src.SampleRate(),
		},
		src:    src,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p.mu.Lock()
	p.current = pb
	p.last = pb
	p.mu.Unlock()

	log.Printf("Playing %s (%s, %dHz) cue=%s", path, pb.cue.Format, pb.cue.SampleRate, pb.cue.ID)

	if p.config.OnActive != nil {
		p.config.OnActive(true)
	}
	go p.run(ctx, pb)

	return pb.cue, nil
}

// Stop ends the current cue and waits for its goroutine to exit
func (p *Player) Stop() {
	p.ctl.Lock()
	defer p.ctl.Unlock()
	p.stop()
}

func (p *Player) stop() {
	p.mu.Lock()
	pb := p.current
	last := p.last
	p.current = nil
	p.last = nil
	p.mu.Unlock()

	if pb == nil {
		// A cue that ended by itself may still be reporting inactive
		if last != nil {
			<-last.done
		}
		return
	}

	pb.cancel()
	<-pb.done
	log.Printf("Stopped cue=%s", pb.cue.ID)

	if p.config.OnActive != nil {
		p.config.OnActive(false)
	}
}

// Playing reports whether a cue is running
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// Current returns the running cue
func (p *Player) Current() (Cue, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Cue{}, false
	}
	return p.current.cue, true
}

// SetVolume sets the output volume (0-100)
func (p *Player) SetVolume(volume int) {
	if p.config.Output != nil {
		p.config.Output.SetVolume(volume)
	}
}

// Close stops playback and releases the output
func (p *Player) Close() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()
	p.stop()

	p.mu.Lock()
	p.closed = true
	wasOpen := p.outputOpen
	p.outputOpen = false
	p.mu.Unlock()

	if wasOpen {
		return p.config.Output.Close()
	}
	return nil
}

func (p *Player) openOutput() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.outputOpen {
		return nil
	}
	if p.config.Output == nil {
		return fmt.Errorf("no audio output configured")
	}
	if err := p.config.Output.Open(p.config.OutputRate, outputChannels); err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	p.outputOpen = true
	return nil
}

// run streams a cue until it ends, fails or is cancelled
func (p *Player) run(ctx context.Context, pb *playback) {
	defer close(pb.done)
	defer pb.src.Close()

	format := pb.cue.Format
	buf := make([]byte, p.config.ChunkFrames*format.FrameSize())
	rs := resample.New(pb.cue.SampleRate, p.config.OutputRate, outputChannels)
	var (
		dec    decode.Decoder
		stereo []int16
	)

	for ctx.Err() == nil {
		n, err := pb.src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			if p.config.OnBuffer != nil {
				p.config.OnBuffer(audio.RawBuffer{Data: chunk, Format: format})
			}

			samples, derr := dec.Decode(chunk, format)
			if derr != nil {
				log.Printf("Decode failed for %s: %v", pb.cue.Path, derr)
				p.finish(pb)
				return
			}

			stereo = toStereo(stereo[:0], samples, format)
			if werr := p.config.Output.Write(rs.Resample(stereo)); werr != nil {
				log.Printf("Output write failed: %v", werr)
				p.finish(pb)
				return
			}
		}

		if err == io.EOF {
			log.Printf("Finished %s cue=%s", pb.cue.Path, pb.cue.ID)
			p.finish(pb)
			return
		}
		if err != nil {
			log.Printf("Read failed for %s: %v", pb.cue.Path, err)
			p.finish(pb)
			return
		}
	}
}

// finish clears pb if it is still current and reports inactive.
// A concurrent Stop owns the notification otherwise. pb.done is closed
// only after this returns.
func (p *Player) finish(pb *playback) {
	p.mu.Lock()
	owned := p.current == pb
	if owned {
		p.current = nil
	}
	p.mu.Unlock()

	if owned && p.config.OnActive != nil {
		p.config.OnActive(false)
	}
}

// toStereo converts decoded samples to interleaved stereo int16.
// Mono is duplicated and channels past the second are dropped.
func toStereo(dst []int16, samples []float64, format audio.FormatDescriptor) []int16 {
	channels := format.Channels
	for i := 0; i+channels <= len(samples); i += channels {
		left := audio.UnitToInt16(audio.ToUnit(samples[i], format))
		right := left
		if channels > 1 {
			right = audio.UnitToInt16(audio.ToUnit(samples[i+1], format))
		}
		dst = append(dst, left, right)
	}
	return dst
}
