// Package modal provides a yes/no confirmation dialog.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/favnpm/internal/keys"
	"github.com/zjrosen/favnpm/internal/ui/overlay"
	"github.com/zjrosen/favnpm/internal/ui/styles"
)

const (
	defaultWidth = 40

	zoneConfirm = "modal-confirm"
	zoneCancel  = "modal-cancel"
)

// Config controls modal appearance.
type Config struct {
	Title        string
	Message      string
	ConfirmLabel string // default "Yes"
	CancelLabel  string // default "No"
	Width        int    // content width, default 40
}

// ConfirmMsg is sent when the user answers yes.
type ConfirmMsg struct{}

// CancelMsg is sent when the user answers no.
type CancelMsg struct{}

// Button identifies the focused button.
type Button int

const (
	ButtonConfirm Button = iota
	ButtonCancel
)

// Model is the modal state.
type Model struct {
	config  Config
	focused Button
	width   int
	height  int
}

// New creates a modal with the confirm button focused.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Yes"
	}
	if cfg.CancelLabel == "" {
		cfg.CancelLabel = "No"
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	return Model{config: cfg, focused: ButtonConfirm}
}

// Update handles keys and clicks. The answer is delivered as a ConfirmMsg or
// CancelMsg command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Confirm.Yes):
			return m, confirm
		case key.Matches(msg, keys.Confirm.No):
			return m, cancel
		case key.Matches(msg, keys.Confirm.Toggle):
			if m.focused == ButtonConfirm {
				m.focused = ButtonCancel
			} else {
				m.focused = ButtonConfirm
			}
		case key.Matches(msg, keys.Confirm.Press):
			if m.focused == ButtonCancel {
				return m, cancel
			}
			return m, confirm
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if z := zone.Get(zoneConfirm); z != nil && z.InBounds(msg) {
			m.focused = ButtonConfirm
			return m, confirm
		}
		if z := zone.Get(zoneCancel); z != nil && z.InBounds(msg) {
			m.focused = ButtonCancel
			return m, cancel
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func confirm() tea.Msg { return ConfirmMsg{} }
func cancel() tea.Msg  { return CancelMsg{} }

// View renders the dialog box.
func (m Model) View() string {
	width := max(m.config.Width, lipgloss.Width(m.config.Title))

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).
		Render(m.config.Title)
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", width+2))

	var body strings.Builder
	if m.config.Message != "" {
		body.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).
			Render(wordwrap.String(m.config.Message, width)))
		body.WriteString("\n\n")
	}
	body.WriteString(m.renderButtons())

	content := title + "\n" + divider + "\n" + lipgloss.NewStyle().Padding(1, 1).Render(body.String())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width + 2).
		Render(content)
}

func (m Model) renderButtons() string {
	yes := styles.PrimaryButtonStyle
	if m.focused == ButtonConfirm {
		yes = styles.PrimaryButtonFocusedStyle
	}
	no := styles.SecondaryButtonStyle
	if m.focused == ButtonCancel {
		no = styles.SecondaryButtonFocusedStyle
	}
	return zone.Mark(zoneConfirm, yes.Render(m.config.ConfirmLabel)) + "  " +
		zone.Mark(zoneCancel, no.Render(m.config.CancelLabel))
}

// Overlay renders the modal centered on bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the viewport size used for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Button { return m.focused }
