package favorites

import "fmt"

// DuplicateMarker is the result text the service returns for a package that
// is already a favorite.
const DuplicateMarker = "Package already added in favourites"

// DefaultFailureReason is used when a rejection carries no message.
const DefaultFailureReason = "Failed to add package."

// OutcomeKind classifies a commit response.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota
	OutcomeDuplicate
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a commit.
type Outcome struct {
	Kind   OutcomeKind
	Reason string // server message for OutcomeFailed, may be empty
	Err    error
}

func failed(reason string, err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason, Err: err}
}

// StatusError reports a non-success response from the favorites service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("favorites: status %d: %s", e.StatusCode, e.Message)
}
