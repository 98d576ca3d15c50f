// Package dispatch turns input state into a single submission to the
// Processing Service.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

type Submitter interface {
	Submit(ctx context.Context, req models.SubmissionRequest) (models.ResultReference, error)
}

// Source is the input state read at submit time. *input.InputModel
// satisfies it.
type Source interface {
	Validate() bool
	Payload() models.InputPayload
}

type Dispatcher struct {
	submitter Submitter
	inFlight  atomic.Bool
}

func NewDispatcher(submitter Submitter) *Dispatcher {
	return &Dispatcher{submitter: submitter}
}

// InFlight reports whether a submission is outstanding.
func (d *Dispatcher) InFlight() bool { return d.inFlight.Load() }

// Submit validates src, sends one request and returns the reference. Errors
// are ErrMissingInput, ErrUnknownFormat, ErrSubmissionInProgress,
// ErrUnreachable or *RejectedError. src is never modified.
func (d *Dispatcher) Submit(ctx context.Context, src Source, action models.FormatKind) (models.ResultReference, error) {
	if !src.Validate() {
		return "", ErrMissingInput
	}
	if !action.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, action)
	}
	if !d.inFlight.CompareAndSwap(false, true) {
		slog.Warn("[Dispatcher] Submission already in progress")
		return "", ErrSubmissionInProgress
	}
	defer d.inFlight.Store(false)

	req := models.NewSubmissionRequest(src.Payload(), action)
	ref, err := d.submitter.Submit(ctx, req)
	if err != nil {
		mapped := classify(err)
		slog.Error("[Dispatcher] Submission failed",
			slog.String("type", string(req.Payload().Kind())),
			slog.String("action", action.String()),
			slog.String("error", mapped.Error()))
		return "", mapped
	}

	slog.Info("[Dispatcher] Submission accepted", slog.String("id", ref.String()))
	return ref, nil
}

func classify(err error) error {
	var statusErr *clients.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &RejectedError{Message: statusErr.Message, StatusCode: statusErr.StatusCode, Err: err}
	case errors.Is(err, clients.ErrMissingReference):
		return &RejectedError{Message: "response missing result reference", Err: err}
	case errors.Is(err, clients.ErrMalformedResponse):
		return &RejectedError{Message: "unexpected response from processing service", Err: err}
	default:
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
}
