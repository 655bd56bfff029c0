// ABOUTME: Palette file persistence
// ABOUTME: Saves and loads slot assignments as a flat pretty-printed JSON object
package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Extension is appended to palette file names that lack it
const Extension = ".json"

// Save writes the assigned slots as {"<row>,<col>": "<path>"}.
// The reserved stop slot is never written.
func (s *Store) Save(w io.Writer) error {
	data := make(map[string]string)
	for slot, path := range s.Entries() {
		if slot.Reserved() || path == "" {
			continue
		}
		data[slot.Key()] = path
	}

	out, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	out = append(out, '\n')

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}

// SaveFile writes the palette to path, adding the .json extension when it
// is missing. It returns the path actually written.
func (s *Store) SaveFile(path string) (string, error) {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write palette file: %w", err)
	}
	return path, nil
}

// Parse reads a palette document. Keys that are not two integers, lie
// outside the grid or name the stop slot are skipped and logged; only a
// document that is not a JSON object of strings is an error.
func Parse(r io.Reader) (map[Slot]string, error) {
	var data map[string]string
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode palette: %w", err)
	}

	entries := make(map[Slot]string, len(data))
	for key, path := range data {
		slot, err := ParseKey(key)
		if err != nil {
			log.Printf("Skipping palette entry %q: %v", key, err)
			continue
		}
		if err := checkSlot(slot); err != nil {
			log.Printf("Skipping palette entry %q: %v", key, err)
			continue
		}
		entries[slot] = path
	}
	return entries, nil
}

// LoadFile reads and parses a palette file without touching any store
func LoadFile(path string) (map[Slot]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseKey parses a "<row>,<col>" key
func ParseKey(key string) (Slot, error) {
	rowStr, colStr, ok := strings.Cut(key, ",")
	if !ok {
		return Slot{}, fmt.Errorf("invalid slot key %q", key)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return Slot{}, fmt.Errorf("invalid row in slot key %q", key)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return Slot{}, fmt.Errorf("invalid column in slot key %q", key)
	}
	return Slot{Row: row, Col: col}, nil
}
