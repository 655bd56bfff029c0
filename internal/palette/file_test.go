// ABOUTME: Tests for palette persistence
// ABOUTME: Tests JSON layout, round trips, malformed keys and load failures
package palette

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLayout(t *testing.T) {
	store := NewStore()
	if err := store.Assign(Slot{0, 0}, "/sounds/intro.mp3"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.Save(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	expected := "{\n    \"0,0\": \"/sounds/intro.mp3\"\n}\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestSaveEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	if err := NewStore().Save(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "{}" {
		t.Errorf("expected empty object, got %q", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store := NewStore()
	if err := store.Assign(Slot{0, 0}, "/sounds/intro.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := store.Assign(Slot{3, 2}, "/sounds/outro.wav"); err != nil {
		t.Fatal(err)
	}

	path, err := store.SaveFile(filepath.Join(dir, "show"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("expected .json extension to be added, got %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("saved file is not a JSON object: %v", err)
	}
	if _, ok := data[StopSlot.Key()]; ok {
		t.Error("stop slot must never be saved")
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	fresh := NewStore()
	fresh.Replace(entries)

	if fresh.Len() != 2 {
		t.Fatalf("expected 2 assignments, got %d", fresh.Len())
	}
	if p, _ := fresh.Path(Slot{0, 0}); p != "/sounds/intro.mp3" {
		t.Errorf("expected intro.mp3 at 0,0, got %q", p)
	}
	if p, _ := fresh.Path(Slot{3, 2}); p != "/sounds/outro.wav" {
		t.Errorf("expected outro.wav at 3,2, got %q", p)
	}
}

func TestSaveFileKeepsExtension(t *testing.T) {
	dir := t.TempDir()

	path, err := NewStore().SaveFile(filepath.Join(dir, "show.json"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "show.json" {
		t.Errorf("expected show.json, got %q", filepath.Base(path))
	}
}

func TestParseSkipsBadKeys(t *testing.T) {
	doc := `{
		"0,0": "/a.wav",
		"abc": "/b.wav",
		"1": "/c.wav",
		"1,x": "/d.wav",
		"1,2,3": "/e.wav",
		"6,4": "/stop.wav",
		"10,0": "/f.wav",
		" 2 , 1 ": "/g.wav"
	}`

	entries, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 usable entries, got %d: %v", len(entries), entries)
	}
	if entries[Slot{0, 0}] != "/a.wav" {
		t.Errorf("expected /a.wav at 0,0")
	}
	if entries[Slot{2, 1}] != "/g.wav" {
		t.Errorf("expected /g.wav at 2,1")
	}
}

func TestParseMalformedJSON(t *testing.T) {
	tests := []string{
		`{"0,0": "/a.wav"`,
		`["0,0"]`,
		`{"0,0": 5}`,
		``,
	}

	for _, doc := range tests {
		if _, err := Parse(strings.NewReader(doc)); err == nil {
			t.Errorf("expected error for %q", doc)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
