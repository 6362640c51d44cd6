package app

import (
	"strconv"
	"strings"

	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/favnpm/internal/keys"
	"github.com/zjrosen/favnpm/internal/ui/styles"
	"github.com/zjrosen/favnpm/internal/workflow"
)

// View renders the form with the confirmation dialog and notifications on top.
func (m Model) View() string {
	inner := max(m.width-2, 10)

	var b strings.Builder
	b.WriteString(zone.Mark(zoneQuery,
		styles.RenderSection([]string{m.query.View()}, queryLabel, "", m.width, m.focus == FocusQuery)))
	b.WriteByte('\n')

	b.WriteString(styles.RenderSection(m.resultRows(), resultsLabel, m.resultsHint(), m.width, m.focus == FocusResults))
	b.WriteByte('\n')
	b.WriteString(styles.StatusLineStyle.Render(m.statusLine()))
	b.WriteByte('\n')

	b.WriteString(zone.Mark(zoneReason,
		styles.RenderSection(strings.Split(m.reason.View(), "\n"), reasonLabel, "", m.width, m.focus == FocusReason)))
	b.WriteByte('\n')

	button := styles.PrimaryButtonStyle
	if m.focus == FocusSubmit {
		button = styles.PrimaryButtonFocusedStyle
	}
	b.WriteString(" " + zone.Mark(zoneSubmit, button.Render(submitLabel)))
	b.WriteByte('\n')

	if err := m.workflow.Err(); err != nil {
		b.WriteString(styles.ErrorTextStyle.Render(wordwrap.String(err.Error(), inner)))
	}
	b.WriteByte('\n')

	if m.workflow.State() == workflow.StateAwaitingConfirmation {
		b.WriteString(m.help.View(keys.Confirm))
	} else {
		b.WriteString(m.help.View(keys.Form))
	}

	view := b.String()
	if m.workflow.State() == workflow.StateAwaitingConfirmation {
		view = m.modal.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

func (m Model) resultRows() []string {
	if len(m.results.Items()) == 0 {
		return []string{styles.StatusLineStyle.Render(" No results")}
	}
	return strings.Split(m.results.View(), "\n")
}

func (m Model) resultsHint() string {
	if n := len(m.results.Items()); n > 0 {
		return strconv.Itoa(n)
	}
	return ""
}

func (m Model) statusLine() string {
	switch {
	case m.workflow.State() == workflow.StateCommitting:
		return " Submitting…"
	case m.search.Loading():
		return " Searching…"
	case m.search.Err() != nil:
		return " Search failed, showing previous results."
	default:
		return ""
	}
}
