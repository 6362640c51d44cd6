package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderSection draws rows inside a rounded box of the given outer width with
// the title set into the top border: ╭─ Title (hint) ───╮. Rows wider than the
// box are truncated. The border is highlighted when focused.
func RenderSection(rows []string, title, hint string, width int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(width-2, 1)

	var b strings.Builder
	if title == "" {
		b.WriteString(border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight))
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		fill := max(inner-lipgloss.Width(label)-3, 0)

		b.WriteString(border.Render(borderTopLeft + borderHorizontal + " "))
		b.WriteString(titleStyle.Render(title))
		if hint != "" {
			b.WriteString(" " + hintStyle.Render("("+hint+")"))
		}
		b.WriteString(border.Render(" " + strings.Repeat(borderHorizontal, fill) + borderTopRight))
	}
	b.WriteByte('\n')

	side := border.Render(borderVertical)
	for _, row := range rows {
		row = Truncate(row, inner)
		if pad := inner - lipgloss.Width(row); pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		b.WriteString(side + row + side + "\n")
	}

	b.WriteString(border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}
