// ABOUTME: Bubbletea model for the remote meter viewer
// ABOUTME: Shows meter snapshots and cue changes received from a feed
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shampuan/Jingle-Box/pkg/meter"
)

// SnapshotMsg carries a meter snapshot
type SnapshotMsg meter.Snapshot

// CueMsg reports the sound that started or stopped
type CueMsg struct {
	Name   string
	Active bool
}

// StatusMsg replaces the viewer status line
type StatusMsg string

type meterModel struct {
	title    string
	snapshot meter.Snapshot
	cue      string
	playing  bool
	status   string
	quitChan chan struct{}
	quitting bool
}

func (m meterModel) Init() tea.Cmd {
	return nil
}

func (m meterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			select {
			case m.quitChan <- struct{}{}:
			default:
			}
			return m, tea.Quit
		}

	case SnapshotMsg:
		m.snapshot = meter.Snapshot(msg)

	case CueMsg:
		m.cue = msg.Name
		m.playing = msg.Active

	case StatusMsg:
		m.status = string(msg)
	}

	return m, nil
}

func (m meterModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(renderMeters(m.snapshot.LeftLevel, m.snapshot.LeftPeakHold,
		m.snapshot.RightLevel, m.snapshot.RightPeakHold))
	b.WriteString("\n\n")

	if m.playing {
		b.WriteString(promptStyle.Render("▶ " + m.cue))
	} else {
		b.WriteString(helpStyle.Render("■"))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q: quit"))

	return b.String()
}
