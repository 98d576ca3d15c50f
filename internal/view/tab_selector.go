package view

import "github.com/srinijamadireddy19/Blog-Digest/internal/models"

// TabSelector is the result screen's selected tab. It is seeded once from
// the navigation payload and only changes on user selection.
type TabSelector struct {
	selected models.FormatKind
}

// NewTabSelector falls back to the summary tab when initial is not a format.
func NewTabSelector(initial models.FormatKind) *TabSelector {
	if !initial.Valid() {
		initial = models.FormatSummary
	}
	return &TabSelector{selected: initial}
}

func (t *TabSelector) Selected() models.FormatKind { return t.selected }

// Select switches tabs. Unknown kinds are ignored and reported as false.
func (t *TabSelector) Select(kind models.FormatKind) bool {
	if !kind.Valid() {
		return false
	}
	t.selected = kind
	return true
}
