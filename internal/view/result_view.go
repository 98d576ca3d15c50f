// Package view projects a RetrievalStatus and the selected tab onto what
// the result screen shows.
package view

import (
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/results"
)

type StateKind int

const (
	ShowSpinner StateKind = iota
	ShowEmptyState
	ShowFormat
	ShowNothingForTab
)

func (k StateKind) String() string {
	switch k {
	case ShowSpinner:
		return "spinner"
	case ShowEmptyState:
		return "empty"
	case ShowFormat:
		return "format"
	case ShowNothingForTab:
		return "nothing"
	default:
		return "unknown"
	}
}

// ViewState is what the result screen renders for one tab.
type ViewState struct {
	Kind   StateKind
	Format models.FormatKind
	Record models.FormatRecord

	// CanGoBack is set on the empty state.
	CanGoBack bool
	// Err is the retrieval failure behind an empty state.
	Err error
	// Rejected is set when the service sent the format but it was incomplete.
	Rejected error
}

// Render is a pure function of its arguments.
func Render(status results.RetrievalStatus, format models.FormatKind) ViewState {
	switch status.Phase {
	case results.PhaseLoading:
		return ViewState{Kind: ShowSpinner, Format: format}
	case results.PhaseReady:
		if rec, ok := status.Bundle.Get(format); ok {
			return ViewState{Kind: ShowFormat, Format: format, Record: rec}
		}
		return ViewState{Kind: ShowNothingForTab, Format: format, Rejected: status.Bundle.Rejected(format)}
	default:
		return ViewState{Kind: ShowEmptyState, Format: format, CanGoBack: true, Err: status.Err}
	}
}
