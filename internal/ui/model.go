// ABOUTME: Bubbletea model for the soundboard TUI
// ABOUTME: Grid of sound slots, stereo meters, prompts and status line
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shampuan/Jingle-Box/internal/palette"
	"github.com/shampuan/Jingle-Box/internal/player"
	"github.com/shampuan/Jingle-Box/pkg/meter"
)

// TickInterval drives the peak-hold animation and meter refresh
const TickInterval = 50 * time.Millisecond

const volumeStep = 5

// Board is what the TUI controls
type Board interface {
	Trigger(slot palette.Slot) (player.Cue, error)
	Stop()
	Assign(slot palette.Slot, path string) error
	Remove(slot palette.Slot) bool
	SavePalette(path string) (string, error)
	LoadPalette(path string) error
	ActiveSlot() (palette.Slot, bool)
	Palette() *palette.Store
	Snapshot() meter.Snapshot
	Tick(now time.Time)
	SetVolume(volume int)
}

type mode int

const (
	modeGrid mode = iota
	modeAssign
	modeSave
	modeOpen
	modeAbout
)

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Options configures the soundboard model
type Options struct {
	Lang        Lang
	Volume      int
	PalettePath string
}

// Model represents the soundboard TUI state
type Model struct {
	board Board
	lang  Lang

	cursor palette.Slot
	volume int

	mode        mode
	input       string
	status      string
	palettePath string

	meter meter.Snapshot

	width    int
	height   int
	quitting bool
}

// NewModel creates the soundboard model
func NewModel(board Board, opts Options) Model {
	if opts.Lang == "" {
		opts.Lang = Turkish
	}
	return Model{
		board:       board,
		lang:        opts.Lang,
		volume:      opts.Volume,
		palettePath: opts.PalettePath,
	}
}

// Init starts the meter tick
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeGrid:
			return m.handleKey(msg)
		case modeAbout:
			m.mode = modeGrid
			return m, nil
		default:
			return m.handlePromptKey(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.board.Tick(time.Time(msg))
		m.meter = m.board.Snapshot()
		return m, tickEvery()
	}

	return m, nil
}

// handleKey handles keyboard input on the grid
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	text := m.lang.T()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.board.Stop()
		return m, tea.Quit
	case "up":
		m.cursor.Row = max(0, m.cursor.Row-1)
	case "down":
		m.cursor.Row = min(palette.Rows-1, m.cursor.Row+1)
	case "left":
		m.cursor.Col = max(0, m.cursor.Col-1)
	case "right":
		m.cursor.Col = min(palette.Columns-1, m.cursor.Col+1)
	case "enter", " ":
		m.trigger()
	case "s", "esc":
		m.board.Stop()
		m.status = text.Stopped
	case "a":
		if m.cursor.Reserved() {
			break
		}
		path, _ := m.board.Palette().Path(m.cursor)
		m.startPrompt(modeAssign, path)
	case "d", "delete":
		if m.board.Remove(m.cursor) {
			m.status = text.Deleted
		}
	case "w":
		m.startPrompt(modeSave, m.palettePath)
	case "o":
		m.startPrompt(modeOpen, m.palettePath)
	case "+", "=":
		m.setVolume(m.volume + volumeStep)
	case "-":
		m.setVolume(m.volume - volumeStep)
	case "l":
		m.lang = m.lang.Next()
	case "?":
		m.mode = modeAbout
	}

	return m, nil
}

func (m *Model) trigger() {
	text := m.lang.T()

	if m.cursor.Reserved() {
		m.board.Stop()
		m.status = text.Stopped
		return
	}
	if _, ok := m.board.Palette().Path(m.cursor); !ok {
		m.status = text.NoSound
		return
	}

	cue, err := m.board.Trigger(m.cursor)
	if err != nil {
		m.status = fmt.Sprintf("%s %v", text.PlayError, err)
		return
	}
	m.status = fmt.Sprintf("%s: %s", text.Playing, palette.DisplayName(cue.Path))
}

func (m *Model) setVolume(volume int) {
	m.volume = max(0, min(100, volume))
	m.board.SetVolume(m.volume)
}

func (m *Model) startPrompt(md mode, initial string) {
	m.mode = md
	m.input = initial
}

// handlePromptKey edits the path prompt
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		m.board.Stop()
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeGrid
		m.input = ""
	case tea.KeyEnter:
		m.commitPrompt()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) commitPrompt() {
	text := m.lang.T()
	path := strings.TrimSpace(m.input)
	md := m.mode
	m.mode = modeGrid
	m.input = ""

	if path == "" {
		return
	}

	switch md {
	case modeAssign:
		if err := m.board.Assign(m.cursor, path); err != nil {
			m.status = fmt.Sprintf("%s %v", text.AssignError, err)
			return
		}
		m.status = text.Assigned
	case modeSave:
		written, err := m.board.SavePalette(path)
		if err != nil {
			m.status = fmt.Sprintf("%s %v", text.SaveError, err)
			return
		}
		m.palettePath = written
		m.status = fmt.Sprintf("%s: %s", text.Saved, written)
	case modeOpen:
		if err := m.board.LoadPalette(path); err != nil {
			m.status = fmt.Sprintf("%s %v", text.LoadError, err)
			return
		}
		m.palettePath = path
		m.status = fmt.Sprintf("%s: %s", text.Loaded, path)
	}
}

// promptTitle returns the label of the active prompt
func (m Model) promptTitle() string {
	text := m.lang.T()
	switch m.mode {
	case modeAssign:
		return text.PromptAssign
	case modeSave:
		return text.PromptSave
	case modeOpen:
		return text.PromptOpen
	}
	return ""
}
