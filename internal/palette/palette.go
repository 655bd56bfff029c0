// ABOUTME: Sound palette store keyed by grid coordinates
// ABOUTME: Tracks which sound file is assigned to each soundboard slot
package palette

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Grid dimensions of the soundboard
const (
	Rows    = 7
	Columns = 5
)

// StopSlot is the reserved slot holding the stop button
var StopSlot = Slot{Row: 6, Col: 4}

var (
	// ErrReservedSlot is returned when assigning to the stop slot
	ErrReservedSlot = errors.New("slot is reserved")

	// ErrOutOfGrid is returned for coordinates outside the grid
	ErrOutOfGrid = errors.New("slot is outside the grid")

	// ErrEmptyPath is returned when assigning an empty path
	ErrEmptyPath = errors.New("empty sound path")
)

// Slot addresses one soundboard button
type Slot struct {
	Row int
	Col int
}

// Valid reports whether the slot lies inside the grid
func (s Slot) Valid() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Columns
}

// Reserved reports whether the slot is the stop button
func (s Slot) Reserved() bool {
	return s == StopSlot
}

// Key returns the persisted "<row>,<col>" form
func (s Slot) Key() string {
	return fmt.Sprintf("%d,%d", s.Row, s.Col)
}

func (s Slot) String() string {
	return s.Key()
}

// Store holds slot assignments. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	paths map[Slot]string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{paths: make(map[Slot]string)}
}

// Assign sets the sound file of a slot
func (s *Store) Assign(slot Slot, path string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if path == "" {
		return ErrEmptyPath
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[slot] = path
	return nil
}

// Clear removes the assignment of a slot and reports whether one existed
func (s *Store) Clear(slot Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.paths[slot]
	delete(s.paths, slot)
	return ok
}

// Path returns the sound file assigned to a slot
func (s *Store) Path(slot Slot) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, ok := s.paths[slot]
	return path, ok
}

// Assigned returns all slots with a sound, in row-major order
func (s *Store) Assigned() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]Slot, 0, len(s.paths))
	for slot := range s.paths {
		slots = append(slots, slot)
	}
	slices.SortFunc(slots, func(a, b Slot) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return slots
}

// Len returns the number of assigned slots
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paths)
}

// Reset clears every non-reserved slot
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slot := range s.paths {
		if !slot.Reserved() {
			delete(s.paths, slot)
		}
	}
}

// Entries returns a copy of the assignments keyed by slot
func (s *Store) Entries() map[Slot]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Slot]string, len(s.paths))
	for slot, path := range s.paths {
		out[slot] = path
	}
	return out
}

// Replace clears every non-reserved slot and applies entries in one step.
// Entries for reserved or out-of-grid slots are skipped.
func (s *Store) Replace(entries map[Slot]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for slot := range s.paths {
		if !slot.Reserved() {
			delete(s.paths, slot)
		}
	}
	for slot, path := range entries {
		if checkSlot(slot) != nil || path == "" {
			continue
		}
		s.paths[slot] = path
	}
}

func checkSlot(slot Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: %s", ErrOutOfGrid, slot)
	}
	if slot.Reserved() {
		return fmt.Errorf("%w: %s", ErrReservedSlot, slot)
	}
	return nil
}

// maxDisplayName is the longest button label shown in full
const maxDisplayName = 14

// DisplayName returns the button label for a sound file: the file name
// without extension, shortened to 11 characters plus "..." when too long.
func DisplayName(path string) string {
	base := filepath.Base(path)
	name := []rune(strings.TrimSuffix(base, filepath.Ext(base)))
	if len(name) > maxDisplayName {
		return string(name[:11]) + "..."
	}
	return string(name)
}
