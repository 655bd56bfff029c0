// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea programs for the soundboard and the meter viewer
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shampuan/Jingle-Box/pkg/meter"
)

// Run starts the soundboard TUI and blocks until the user quits
func Run(board Board, opts Options) error {
	p := tea.NewProgram(NewModel(board, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// MeterTUI displays a remote meter feed
type MeterTUI struct {
	program  *tea.Program
	updates  chan tea.Msg
	quitChan chan struct{}
}

// NewMeterTUI creates a meter viewer titled title
func NewMeterTUI(title string) *MeterTUI {
	quitChan := make(chan struct{}, 1)
	m := meterModel{title: title, quitChan: quitChan}
	return &MeterTUI{
		program:  tea.NewProgram(m, tea.WithAltScreen()),
		updates:  make(chan tea.Msg, 32),
		quitChan: quitChan,
	}
}

// Start runs the viewer and blocks until it exits
func (t *MeterTUI) Start() error {
	go func() {
		for msg := range t.updates {
			t.program.Send(msg)
		}
	}()

	_, err := t.program.Run()
	return err
}

// QuitChan is signalled when the user quits
func (t *MeterTUI) QuitChan() <-chan struct{} {
	return t.quitChan
}

// Snapshot queues a meter snapshot, dropping it if the viewer is behind
func (t *MeterTUI) Snapshot(s meter.Snapshot) {
	t.send(SnapshotMsg(s))
}

// Cue queues a cue change
func (t *MeterTUI) Cue(name string, active bool) {
	t.send(CueMsg{Name: name, Active: active})
}

// Status queues a status line
func (t *MeterTUI) Status(status string) {
	t.send(StatusMsg(status))
}

func (t *MeterTUI) send(msg tea.Msg) {
	select {
	case t.updates <- msg:
	default:
		// Don't block if channel is full
	}
}

// Stop stops the viewer
func (t *MeterTUI) Stop() {
	t.program.Quit()
}
