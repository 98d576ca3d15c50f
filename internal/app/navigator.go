// Package app moves the user between the input screen and the result
// screen. A Navigator is driven from a single presentation loop and is not
// safe for concurrent use; network work happens in the stores it owns.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/srinijamadireddy19/Blog-Digest/internal/dispatch"
	"github.com/srinijamadireddy19/Blog-Digest/internal/input"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/results"
	"github.com/srinijamadireddy19/Blog-Digest/internal/view"
)

type Screen int

const (
	ScreenInput Screen = iota
	ScreenResult
)

func (s Screen) String() string {
	if s == ScreenResult {
		return "result"
	}
	return "input"
}

// NavigationState is the payload carried to the result screen.
type NavigationState struct {
	Ref models.ResultReference
	Tab models.FormatKind
}

type Navigator struct {
	dispatcher *dispatch.Dispatcher
	fetcher    results.Fetcher
	cache      *results.BundleCache

	screen  Screen
	input   *input.InputModel
	store   *results.Store
	tabs    *view.TabSelector
	updates <-chan results.RetrievalStatus
}

func NewNavigator(submitter dispatch.Submitter, fetcher results.Fetcher, cache *results.BundleCache) *Navigator {
	return &Navigator{
		dispatcher: dispatch.NewDispatcher(submitter),
		fetcher:    fetcher,
		cache:      cache,
		screen:     ScreenInput,
		input:      input.NewInputModel(),
	}
}

func (n *Navigator) Screen() Screen { return n.screen }

// Input is the current submission screen's model. It is replaced on GoBack.
func (n *Navigator) Input() *input.InputModel { return n.input }

func (n *Navigator) Submitting() bool { return n.dispatcher.InFlight() }

// Submit sends the input model with action. Only a successful submission
// navigates; on any error the input model keeps its data. A missing input
// raises the model's inline warning.
func (n *Navigator) Submit(ctx context.Context, action models.FormatKind) error {
	if n.screen != ScreenInput {
		return errors.New("submit is only available on the input screen")
	}
	ref, err := n.dispatcher.Submit(ctx, n.input, action)
	if err != nil {
		if errors.Is(err, dispatch.ErrMissingInput) {
			n.input.MarkInputRequired()
		}
		return err
	}
	n.OpenResult(ctx, NavigationState{Ref: ref, Tab: action})
	return nil
}

// OpenResult shows the result screen for nav. An empty reference is allowed
// and settles to Failed.
func (n *Navigator) OpenResult(ctx context.Context, nav NavigationState) <-chan results.RetrievalStatus {
	if n.store != nil {
		n.store.Close()
	}
	slog.Info("[Navigator] Opening result screen",
		slog.String("id", nav.Ref.String()),
		slog.String("tab", nav.Tab.String()))

	n.screen = ScreenResult
	n.input = nil
	n.tabs = view.NewTabSelector(nav.Tab)
	n.store = results.NewStore(n.fetcher, n.cache)
	n.updates = n.store.Load(ctx, nav.Ref)
	return n.updates
}

// Updates is the status channel of the current result screen, or nil.
func (n *Navigator) Updates() <-chan results.RetrievalStatus { return n.updates }

// Await blocks until the current result screen settles or ctx ends.
func (n *Navigator) Await(ctx context.Context) (results.RetrievalStatus, bool) {
	if n.store == nil {
		return results.RetrievalStatus{}, false
	}
	return results.Await(ctx, n.updates)
}

// SelectTab changes the tab on the result screen. It never fetches.
func (n *Navigator) SelectTab(kind models.FormatKind) bool {
	if n.tabs == nil {
		return false
	}
	return n.tabs.Select(kind)
}

func (n *Navigator) SelectedTab() models.FormatKind {
	if n.tabs == nil {
		return ""
	}
	return n.tabs.Selected()
}

func (n *Navigator) Reference() models.ResultReference {
	if n.store == nil {
		return ""
	}
	return n.store.Reference()
}

// View renders the current tab from the store's latest status.
func (n *Navigator) View() view.ViewState {
	if n.store == nil {
		return view.ViewState{Kind: view.ShowEmptyState, CanGoBack: true, Err: results.ErrNoReference}
	}
	return view.Render(n.store.Status(), n.tabs.Selected())
}

// GoBack discards the result screen and starts a fresh input screen.
func (n *Navigator) GoBack() {
	if n.store != nil {
		n.store.Close()
	}
	n.store = nil
	n.tabs = nil
	n.updates = nil
	n.input = input.NewInputModel()
	n.screen = ScreenInput
}
