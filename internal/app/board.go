// ABOUTME: Soundboard orchestration of palette, player and meter
// ABOUTME: Routes slot triggers to playback and playback buffers to metering
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shampuan/Jingle-Box/internal/palette"
	"github.com/shampuan/Jingle-Box/internal/player"
	"github.com/shampuan/Jingle-Box/pkg/audio"
	"github.com/shampuan/Jingle-Box/pkg/meter"
)

// ErrNoSound is returned when triggering a slot with no assigned sound
var ErrNoSound = errors.New("no sound assigned to slot")

// CueEvent reports a playback start or stop
type CueEvent struct {
	Active bool
	Cue    player.Cue
	Slot   palette.Slot
}

// BoardConfig holds board configuration
type BoardConfig struct {
	// Player configures playback; its callbacks are owned by the board
	Player player.Config

	// Meter configures the metering engine
	Meter meter.Config

	// OnCue is called after a slot starts playing and after playback stops
	OnCue func(CueEvent)
}

// Board is the soundboard: a palette of slots, one player and a stereo meter
type Board struct {
	config BoardConfig
	store  *palette.Store
	player *player.Player
	engine *meter.Engine

	mu        sync.Mutex
	active    palette.Slot
	activeCue string
}

// NewBoard creates a board with an empty palette
func NewBoard(config BoardConfig) *Board {
	b := &Board{
		config: config,
		store:  palette.NewStore(),
		engine: meter.NewEngine(config.Meter),
	}

	pc := config.Player
	pc.OnBuffer = func(buf audio.RawBuffer) {
		b.engine.PushBuffer(buf)
	}
	pc.OnActive = b.handleActive
	b.player = player.New(pc)

	return b
}

// Palette returns the slot store
func (b *Board) Palette() *palette.Store {
	return b.store
}

// Engine returns the metering engine
func (b *Board) Engine() *meter.Engine {
	return b.engine
}

// Trigger plays the sound of slot. The stop slot stops playback.
func (b *Board) Trigger(slot palette.Slot) (player.Cue, error) {
	if slot.Reserved() {
		b.Stop()
		return player.Cue{}, nil
	}

	path, ok := b.store.Path(slot)
	if !ok {
		return player.Cue{}, fmt.Errorf("%w: %s", ErrNoSound, slot)
	}

	cue, err := b.player.Play(path)
	if err != nil {
		return player.Cue{}, err
	}

	b.mu.Lock()
	b.active = slot
	b.activeCue = cue.ID
	b.mu.Unlock()

	if b.config.OnCue != nil {
		b.config.OnCue(CueEvent{Active: true, Cue: cue, Slot: slot})
	}
	return cue, nil
}

// Stop stops playback
func (b *Board) Stop() {
	b.player.Stop()
}

// Playing reports whether a sound is playing
func (b *Board) Playing() bool {
	return b.player.Playing()
}

// ActiveSlot returns the slot whose sound is playing
func (b *Board) ActiveSlot() (palette.Slot, bool) {
	cue, ok := b.player.Current()
	if !ok {
		return palette.Slot{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cue.ID != b.activeCue {
		return palette.Slot{}, false
	}
	return b.active, true
}

// Assign sets the sound file of a slot
func (b *Board) Assign(slot palette.Slot, path string) error {
	if !player.Supported(path) {
		return fmt.Errorf("%w: %s", player.ErrUnsupportedFile, path)
	}
	if err := b.store.Assign(slot, path); err != nil {
		return err
	}
	log.Printf("Assigned %s to slot %s", path, slot)
	return nil
}

// Remove clears a slot, stopping playback if it is the playing slot
func (b *Board) Remove(slot palette.Slot) bool {
	if active, ok := b.ActiveSlot(); ok && active == slot {
		b.Stop()
	}
	return b.store.Clear(slot)
}

// SavePalette writes the palette to path and returns the file written
func (b *Board) SavePalette(path string) (string, error) {
	written, err := b.store.SaveFile(path)
	if err != nil {
		return "", err
	}
	log.Printf("Saved palette with %d sounds to %s", b.store.Len(), written)
	return written, nil
}

// LoadPalette replaces the palette with the file at path and stops playback.
// A file that fails to parse leaves the palette untouched.
func (b *Board) LoadPalette(path string) error {
	entries, err := palette.LoadFile(path)
	if err != nil {
		return err
	}

	b.Stop()
	b.store.Replace(entries)

	log.Printf("Loaded palette with %d sounds from %s", b.store.Len(), path)
	return nil
}

// Snapshot returns the current meter values
func (b *Board) Snapshot() meter.Snapshot {
	return b.engine.Snapshot()
}

// Tick advances the peak-hold animation
func (b *Board) Tick(now time.Time) {
	b.engine.Tick(now)
}

// SetVolume sets the playback volume (0-100)
func (b *Board) SetVolume(volume int) {
	b.player.SetVolume(volume)
}

// Close stops playback and releases the audio output
func (b *Board) Close() error {
	return b.player.Close()
}

func (b *Board) handleActive(active bool) {
	b.engine.SetActive(active)

	if !active && b.config.OnCue != nil {
		b.config.OnCue(CueEvent{Active: false})
	}
}
