package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput means the active input variant is empty. Nothing was sent.
	ErrMissingInput = errors.New("input required")
	// ErrUnreachable wraps transport failures.
	ErrUnreachable          = errors.New("processing service unreachable")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrUnknownFormat        = errors.New("unknown format")
)

// RejectedError is a submission the service answered but refused.
type RejectedError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *RejectedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission rejected (%d): %s", e.StatusCode, e.Message)
	}
	return "submission rejected: " + e.Message
}

func (e *RejectedError) Unwrap() error { return e.Err }
