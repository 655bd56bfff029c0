// ABOUTME: Rendering of the soundboard grid and stereo meters
// ABOUTME: Uses lipgloss styles for slot rows, the stop button and meter bars
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shampuan/Jingle-Box/internal/palette"
	"github.com/shampuan/Jingle-Box/internal/version"
)

const (
	cellWidth = 16

	// Each bordered cell is three lines tall, the meters match the grid
	meterHeight = palette.Rows * 3
)

var (
	meterColor = lipgloss.Color("#5fa686")
	stopColor  = lipgloss.Color("#e03c3c")
	rowColors  = [palette.Rows]lipgloss.Color{
		"#e68a8a",
		meterColor,
		meterColor,
		meterColor,
		meterColor,
		meterColor,
		"#e6c08a",
	}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	helpStyle = lipgloss.NewStyle().Faint(true)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder())

	meterFillStyle = lipgloss.NewStyle().Foreground(meterColor)
	meterHoldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	meterLabel     = lipgloss.NewStyle().Bold(true).Width(2).Align(lipgloss.Center)
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.lang.T().Title))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(version.Version))
	b.WriteString("\n\n")

	if m.mode == modeAbout {
		b.WriteString(m.renderAbout())
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGrid(),
		"  ",
		renderMeters(m.meter.LeftLevel, m.meter.LeftPeakHold, m.meter.RightLevel, m.meter.RightPeakHold),
	))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

// renderGrid renders the 7x5 slot grid
func (m Model) renderGrid() string {
	text := m.lang.T()
	active, playing := m.board.ActiveSlot()
	store := m.board.Palette()

	rows := make([]string, 0, palette.Rows)
	for r := 0; r < palette.Rows; r++ {
		cells := make([]string, 0, palette.Columns)
		for c := 0; c < palette.Columns; c++ {
			slot := palette.Slot{Row: r, Col: c}
			color := rowColors[r]

			label := text.Empty
			if slot.Reserved() {
				label = text.Stop
				color = stopColor
			} else if path, ok := store.Path(slot); ok {
				label = palette.DisplayName(path)
			}

			style := cellStyle.BorderForeground(color).Foreground(color)
			if playing && slot == active {
				style = style.Reverse(true)
			}
			if slot == m.cursor {
				style = style.Bold(true).BorderForeground(lipgloss.Color("255"))
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMeters renders the left and right meter columns side by side
func renderMeters(left, leftHold, right, rightHold float64) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderMeter("L", left, leftHold),
		" ",
		renderMeter("R", right, rightHold),
	)
}

func renderMeter(label string, level, hold float64) string {
	column := meterColumn(level, hold, meterHeight-1)
	lines := make([]string, 0, meterHeight)
	for _, cell := range column {
		switch cell {
		case cellHold:
			lines = append(lines, meterHoldStyle.Render(string(cell)))
		default:
			lines = append(lines, meterFillStyle.Render(string(cell)))
		}
	}
	lines = append(lines, meterLabel.Render(label))
	return strings.Join(lines, "\n")
}

type meterCell string

const (
	cellEmpty meterCell = "  "
	cellFill  meterCell = "██"
	cellHold  meterCell = "▬▬"
)

// meterColumn lays out a vertical meter top to bottom. The held peak is
// drawn over the fill.
func meterColumn(level, hold float64, height int) []meterCell {
	filled := int(level*float64(height) + 0.5)
	marker := -1
	if hold > 0 {
		marker = min(height-1, int(hold*float64(height)))
	}

	cells := make([]meterCell, height)
	for r := range cells {
		i := height - 1 - r
		switch {
		case i == marker:
			cells[r] = cellHold
		case i < filled:
			cells[r] = cellFill
		default:
			cells[r] = cellEmpty
		}
	}
	return cells
}

// renderStatus renders the status, volume and help lines
func (m Model) renderStatus() string {
	text := m.lang.T()
	var b strings.Builder

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s: [%s] %d%%", text.Volume, renderBar(m.volume, 100, 10), m.volume)))
	b.WriteString("\n")

	if m.mode != modeGrid {
		b.WriteString(promptStyle.Render(m.promptTitle() + ": "))
		b.WriteString(m.input)
		b.WriteString("█\n")
		b.WriteString(helpStyle.Render(text.PromptHelp))
		return b.String()
	}

	b.WriteString(helpStyle.Render(text.Help))
	return b.String()
}

// renderAbout renders the about panel
func (m Model) renderAbout() string {
	text := m.lang.T()
	lines := []string{
		fmt.Sprintf("%s: %s", text.AboutVersion, version.Version),
		fmt.Sprintf("%s: %s", text.AboutLicense, version.License),
		"",
		text.AboutDesc,
		"",
		text.AboutWarranty,
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(60).
		Render(strings.Join(lines, "\n"))
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	return b.String()
}
