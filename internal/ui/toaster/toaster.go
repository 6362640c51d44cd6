// Package toaster renders transient notifications at the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/favnpm/internal/ui/overlay"
	"github.com/zjrosen/favnpm/internal/ui/styles"
)

// Style determines the border color and glyph of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// maxWidth bounds the toast body before wrapping.
const maxWidth = 48

// DismissMsg hides the toast it was scheduled for. A newer toast is left
// alone so a stale timer cannot cut it short.
type DismissMsg struct {
	seq int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that hides it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true

	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles dismissal.
func (m Model) Update(msg tea.Msg) Model {
	if msg, ok := msg.(DismissMsg); ok && msg.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the text being shown.
func (m Model) Message() string { return m.message }

// Style returns the style of the current toast.
func (m Model) Style() Style { return m.style }

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	var (
		color lipgloss.TerminalColor
		glyph string
	)
	switch m.style {
	case StyleError:
		color, glyph = styles.StatusErrorColor, "✗"
	case StyleInfo:
		color, glyph = styles.StatusInfoColor, "i"
	case StyleWarn:
		color, glyph = styles.StatusWarningColor, "!"
	default:
		color, glyph = styles.StatusSuccessColor, "✓"
	}

	body := wordwrap.String(glyph+" "+m.message, maxWidth)
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(body)
}

// Overlay renders the toast bottom-center over bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
