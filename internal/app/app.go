// Package app contains the root application model: the search form, the
// results list, and the confirmation flow for adding a favorite.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/favnpm/internal/favorites"
	"github.com/zjrosen/favnpm/internal/keys"
	"github.com/zjrosen/favnpm/internal/log"
	"github.com/zjrosen/favnpm/internal/selection"
	"github.com/zjrosen/favnpm/internal/throttle"
	"github.com/zjrosen/favnpm/internal/ui/modal"
	"github.com/zjrosen/favnpm/internal/ui/toaster"
	"github.com/zjrosen/favnpm/internal/workflow"
)

// Focus identifies the form element receiving keys.
type Focus int

const (
	FocusQuery Focus = iota
	FocusResults
	FocusReason
	FocusSubmit
)

const focusCount = 4

const (
	queryLabel        = "Search For NPM Packages"
	queryPlaceholder  = "Search here"
	resultsLabel      = "Results"
	reasonLabel       = "why is this your Fav?"
	reasonPlaceholder = "Enter your text here..."
	submitLabel       = "Submit"

	zoneQuery  = "field-query"
	zoneReason = "field-reason"
	zoneSubmit = "field-submit"

	defaultWidth  = 80
	defaultHeight = 30
)

// Options wires the model to its collaborators.
type Options struct {
	Searcher      throttle.Searcher
	Committer     favorites.Committer
	Debounce      time.Duration
	ToastDuration time.Duration
}

// commitDoneMsg carries the outcome of a favorites commit.
type commitDoneMsg struct {
	outcome favorites.Outcome
}

// Model is the root application state.
type Model struct {
	committer     favorites.Committer
	toastDuration time.Duration

	query   textinput.Model
	results list.Model
	reason  textarea.Model
	help    help.Model

	search    throttle.Controller
	selection selection.State
	workflow  workflow.Machine
	snapshot  int // last throttle snapshot reflected in the list

	modal   modal.Model
	toaster toaster.Model

	focus  Focus
	width  int
	height int
}

// New creates the root model.
func New(opts Options) Model {
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}

	q := textinput.New()
	q.Placeholder = queryPlaceholder
	q.Prompt = "> "
	q.Focus()

	r := textarea.New()
	r.Placeholder = reasonPlaceholder
	r.ShowLineNumbers = false
	r.Prompt = ""
	r.CharLimit = 0
	r.MaxHeight = 0
	r.SetHeight(3)

	results := list.New([]list.Item{}, resultDelegate{}, 0, 0)
	results.SetShowTitle(false)
	results.SetShowStatusBar(false)
	results.SetShowHelp(false)
	results.SetFilteringEnabled(false)
	results.KeyMap.Quit.SetEnabled(false)
	results.KeyMap.ForceQuit.SetEnabled(false)

	m := Model{
		committer:     opts.Committer,
		toastDuration: opts.ToastDuration,
		query:         q,
		results:       results,
		reason:        r,
		help:          help.New(),
		search:        throttle.New(opts.Searcher, opts.Debounce),
		toaster:       toaster.New(),
		focus:         FocusQuery,
	}
	return m.resize(defaultWidth, defaultHeight)
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Form.Quit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case modal.ConfirmMsg:
		return m.confirm(true)

	case modal.CancelMsg:
		return m.confirm(false)

	case commitDoneMsg:
		return m.resolve(msg.outcome)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	// Debounce ticks, lookup results, and cursor blinks.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	// Results landing during a submission stay in the controller until the
	// next query edit.
	if _, ok := msg.(throttle.ResultMsg); ok && m.workflow.State() == workflow.StateIdle {
		m = m.syncResults()
	}

	m.query, cmd = m.query.Update(msg)
	cmds = append(cmds, cmd)
	m.reason, cmd = m.reason.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.workflow.State() {
	case workflow.StateAwaitingConfirmation:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	case workflow.StateCommitting:
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Form.NextField):
		return m.focusOn((m.focus + 1) % focusCount)
	case key.Matches(msg, keys.Form.PrevField):
		return m.focusOn((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()
	}

	switch m.focus {
	case FocusQuery:
		var cmd, searchCmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		m, searchCmd = m.setQuery(m.query.Value())
		return m, tea.Batch(cmd, searchCmd)

	case FocusResults:
		switch {
		case key.Matches(msg, keys.Form.Up):
			m.results.CursorUp()
		case key.Matches(msg, keys.Form.Down):
			m.results.CursorDown()
		case key.Matches(msg, keys.Form.Select):
			if item, ok := m.results.SelectedItem().(packageItem); ok {
				m = m.selectPackage(item.name)
			}
		}
		return m, nil

	case FocusReason:
		var cmd tea.Cmd
		m.reason, cmd = m.reason.Update(msg)
		return m, cmd

	case FocusSubmit:
		if key.Matches(msg, keys.Form.Select) {
			return m.submit()
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.workflow.State() {
	case workflow.StateAwaitingConfirmation:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	case workflow.StateCommitting:
		return m, nil
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if idx, ok := m.clickedResult(msg); ok {
		m.results.Select(idx)
		if item, ok := m.results.SelectedItem().(packageItem); ok {
			m = m.selectPackage(item.name)
		}
		return m.focusOn(FocusResults)
	}
	if z := zone.Get(zoneSubmit); z != nil && z.InBounds(msg) {
		m, _ = m.focusOn(FocusSubmit)
		return m.submit()
	}
	if z := zone.Get(zoneQuery); z != nil && z.InBounds(msg) {
		return m.focusOn(FocusQuery)
	}
	if z := zone.Get(zoneReason); z != nil && z.InBounds(msg) {
		return m.focusOn(FocusReason)
	}
	return m, nil
}

func (m Model) focusOn(f Focus) (Model, tea.Cmd) {
	m.focus = f
	m.query.Blur()
	m.reason.Blur()

	var cmd tea.Cmd
	switch f {
	case FocusQuery:
		cmd = m.query.Focus()
	case FocusReason:
		cmd = m.reason.Focus()
	}
	return m, cmd
}

func (m Model) setQuery(q string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.SetQuery(q)
	return m.syncResults(), cmd
}

// syncResults rebuilds the list when the controller has applied a new result
// set, and drops a selection that is no longer listed.
func (m Model) syncResults() Model {
	if m.search.Snapshot() == m.snapshot {
		return m
	}
	m.snapshot = m.search.Snapshot()

	pkgs := m.search.Results()
	items := make([]list.Item, len(pkgs))
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		items[i] = packageItem{name: p.Name}
		names[i] = p.Name
	}
	m.results.SetItems(items)
	m.results.Select(0)

	if prev := m.selection.Selected(); prev != "" {
		m.selection = m.selection.Reconcile(names)
		if !m.selection.HasSelection() {
			log.Debug(log.CatUI, "selection no longer in results", "name", prev)
		}
	}
	m.results.SetDelegate(resultDelegate{selected: m.selection.Selected()})
	return m
}

func (m Model) selectPackage(name string) Model {
	m.selection = m.selection.Select(name)
	m.results.SetDelegate(resultDelegate{selected: name})
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	wf, err := m.workflow.Submit(m.selection.Selected(), m.reason.Value())
	m.workflow = wf
	if err != nil {
		return m, nil
	}

	m.modal = modal.New(modal.Config{
		Title:   "Confirm",
		Message: workflow.ConfirmPrompt,
	})
	m.modal.SetSize(m.width, m.height)
	return m, nil
}

func (m Model) confirm(yes bool) (tea.Model, tea.Cmd) {
	wf, req := m.workflow.Confirm(yes)
	m.workflow = wf
	if req == nil {
		return m, nil
	}

	committer, payload := m.committer, *req
	return m, func() tea.Msg {
		return commitDoneMsg{outcome: committer.Commit(context.Background(), payload)}
	}
}

func (m Model) resolve(out favorites.Outcome) (tea.Model, tea.Cmd) {
	wf, res := m.workflow.Resolve(out)
	m.workflow = wf
	if res.Kind == workflow.ResultNone {
		return m, nil
	}

	style := toaster.StyleSuccess
	switch res.Kind {
	case workflow.ResultDuplicateAcknowledged:
		style = toaster.StyleInfo
	case workflow.ResultFailed:
		style = toaster.StyleError
	}

	var cmds []tea.Cmd
	if res.Reset {
		var cmd tea.Cmd
		m, cmd = m.reset()
		cmds = append(cmds, cmd)
	}

	message := res.Message
	if res.Detail != "" && res.Detail != favorites.DefaultFailureReason {
		message += "\n" + res.Detail
	}

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, m.toastDuration)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// reset clears the form after a successful submission.
func (m Model) reset() (Model, tea.Cmd) {
	m.query.Reset()
	m.reason.Reset()
	m.selection = m.selection.Clear()
	m.search = m.search.Reset()
	m = m.syncResults()

	return m.focusOn(FocusQuery)
}

func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height

	inner := max(width-2, 10)
	m.query.Width = max(inner-len(m.query.Prompt)-1, 1)
	m.reason.SetWidth(inner)
	m.results.SetSize(inner, m.resultsHeight())
	m.modal.SetSize(width, height)
	m.help.Width = width
	return m
}

// resultsHeight is the number of rows left for the results list once the
// fixed parts of the form are laid out.
func (m Model) resultsHeight() int {
	const fixed = 3 + 2 + 1 + 5 + 1 + 1 + 1 + 2
	return min(max(m.height-fixed, 3), 12)
}

// Focused returns the focused form element.
func (m Model) Focused() Focus { return m.focus }

// Selected returns the selected package name.
func (m Model) Selected() string { return m.selection.Selected() }

// Query returns the query text.
func (m Model) Query() string { return m.query.Value() }

// Reason returns the reason text.
func (m Model) Reason() string { return m.reason.Value() }

// WorkflowState returns the submission phase.
func (m Model) WorkflowState() workflow.State { return m.workflow.State() }

// ValidationErr returns the error shown under the form, if any.
func (m Model) ValidationErr() error { return m.workflow.Err() }

// Toast returns the visible notification text, or "".
func (m Model) Toast() string { return m.toaster.Message() }

// ResultNames returns the listed package names in order.
func (m Model) ResultNames() []string {
	items := m.results.Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.(packageItem).name
	}
	return names
}
