// Package workflow implements the two-phase favorite submission: validate,
// confirm, then commit.
package workflow

import (
	"errors"
	"strings"

	"github.com/zjrosen/favnpm/internal/favorites"
	"github.com/zjrosen/favnpm/internal/log"
)

// State is the submission phase.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingConfirmation
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// ValidationError is a user-correctable problem with the form.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	ErrMissingSelection = &ValidationError{msg: "Please select a package from the list."}
	ErrMissingReason    = &ValidationError{msg: "Please enter a reason why this is your favorite."}

	// ErrBusy is returned by Submit outside StateIdle.
	ErrBusy = errors.New("submission already in progress")
)

// User-facing text for each phase.
const (
	ConfirmPrompt    = "Are you sure you want to submit?"
	MessageSuccess   = "Package added to favorites!"
	MessageDuplicate = "This package is already in favorites."
	MessageFailed    = "Failed to add package. Please try again."
)

// ResultKind is the terminal outcome of one submission.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultSuccess
	ResultDuplicateAcknowledged
	ResultFailed
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultDuplicateAcknowledged:
		return "duplicate_acknowledged"
	case ResultFailed:
		return "failed"
	default:
		return "none"
	}
}

// Result reports how a commit resolved.
type Result struct {
	Kind    ResultKind
	Message string // notification text
	Detail  string // server-provided failure reason, if any
	Reset   bool   // whether the form should be cleared
}

// Machine is the submission state machine. The zero value is idle.
type Machine struct {
	state   State
	err     error
	pending *favorites.Request
}

// New returns an idle Machine.
func New() Machine { return Machine{} }

// Submit validates the form. On success the request is frozen from the
// arguments and the machine awaits confirmation. The selection check runs
// first, so a form missing both reports only the selection.
func (m Machine) Submit(selected, reason string) (Machine, error) {
	if m.state != StateIdle {
		return m, ErrBusy
	}
	m.state = StateValidating

	switch {
	case selected == "":
		m.err = ErrMissingSelection
	case strings.TrimSpace(reason) == "":
		m.err = ErrMissingReason
	default:
		m.err = nil
	}

	if m.err != nil {
		log.Debug(log.CatWorkflow, "validation failed", "error", m.err)
		m.state = StateIdle
		return m, m.err
	}

	m.pending = &favorites.Request{Name: selected, Description: reason}
	m.state = StateAwaitingConfirmation
	log.Debug(log.CatWorkflow, "awaiting confirmation", "name", selected)
	return m, nil
}

// Confirm answers the confirmation prompt. A "yes" returns the frozen request,
// which the caller must commit and later pass the outcome to Resolve. A "no"
// returns to idle without touching the form.
func (m Machine) Confirm(yes bool) (Machine, *favorites.Request) {
	if m.state != StateAwaitingConfirmation {
		return m, nil
	}
	if !yes {
		log.Debug(log.CatWorkflow, "submission declined")
		m.state = StateIdle
		m.pending = nil
		return m, nil
	}

	req := *m.pending
	m.state = StateCommitting
	log.Debug(log.CatWorkflow, "committing", "name", req.Name)
	return m, &req
}

// Resolve maps a commit outcome to a Result and returns to idle. Outside
// StateCommitting it returns a ResultNone and leaves the machine unchanged.
func (m Machine) Resolve(out favorites.Outcome) (Machine, Result) {
	if m.state != StateCommitting {
		return m, Result{}
	}

	var res Result
	switch out.Kind {
	case favorites.OutcomeAccepted:
		res = Result{Kind: ResultSuccess, Message: MessageSuccess, Reset: true}
	case favorites.OutcomeDuplicate:
		res = Result{Kind: ResultDuplicateAcknowledged, Message: MessageDuplicate}
	default:
		res = Result{Kind: ResultFailed, Message: MessageFailed, Detail: out.Reason}
		log.ErrorErr(log.CatWorkflow, "submission failed", out.Err, "name", m.pending.Name, "reason", out.Reason)
	}

	m.state = StateIdle
	m.pending = nil
	return m, res
}

// State returns the current phase.
func (m Machine) State() State { return m.state }

// Err returns the validation error from the last Submit, if any.
func (m Machine) Err() error { return m.err }

// Pending returns the frozen request while awaiting confirmation or committing.
func (m Machine) Pending() (favorites.Request, bool) {
	if m.pending == nil {
		return favorites.Request{}, false
	}
	return *m.pending, true
}
