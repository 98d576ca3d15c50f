package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

const BAR_WIDTH = 20

// TextRenderer writes view states as plain text.
type TextRenderer struct {
	Out io.Writer
}

func NewTextRenderer(out io.Writer) *TextRenderer {
	return &TextRenderer{Out: out}
}

// Tabs writes the tab bar with the selected tab bracketed.
func (r *TextRenderer) Tabs(selected models.FormatKind) error {
	labels := make([]string, 0, len(models.AllFormats))
	for _, k := range models.AllFormats {
		if k == selected {
			labels = append(labels, "["+k.String()+"]")
		} else {
			labels = append(labels, " "+k.String()+" ")
		}
	}
	_, err := fmt.Fprintln(r.Out, strings.Join(labels, " "))
	return err
}

func (r *TextRenderer) Render(state ViewState) error {
	var b strings.Builder
	switch state.Kind {
	case ShowSpinner:
		b.WriteString("Loading results...\n")
	case ShowEmptyState:
		b.WriteString("No results available.\n")
		if state.Err != nil {
			fmt.Fprintf(&b, "  reason: %v\n", state.Err)
		}
		if state.CanGoBack {
			b.WriteString("Type \"back\" to submit new content.\n")
		}
	case ShowNothingForTab:
		fmt.Fprintf(&b, "Nothing to show for %s.\n", state.Format.Title())
	case ShowFormat:
		fmt.Fprintf(&b, "== %s ==\n", state.Format.Title())
		writeRecord(&b, state.Record)
	}
	_, err := io.WriteString(r.Out, b.String())
	return err
}

func writeRecord(b *strings.Builder, rec models.FormatRecord) {
	switch rec := rec.(type) {
	case models.SummaryRecord:
		fmt.Fprintf(b, "%s\n\n%s\n", rec.Title, rec.Content)
		if len(rec.KeyPoints) > 0 {
			b.WriteString("\nKey points:\n")
			for _, p := range rec.KeyPoints {
				fmt.Fprintf(b, "  - %s\n", p)
			}
		}
	case models.PDFRecord:
		fmt.Fprintf(b, "%s (%s)\n", rec.FileName, rec.FileSize)
	case models.KeywordsRecord:
		for _, k := range rec.Keywords {
			fmt.Fprintf(b, "  %-28s %s %3.0f%%\n", k.Word, bar(k.Relevance), k.Relevance)
		}
	case models.TopicsRecord:
		fmt.Fprintf(b, "Primary topic: %s (%.0f%%)\n", rec.PrimaryTopic, rec.Confidence)
		for _, c := range rec.Categories {
			fmt.Fprintf(b, "  %-28s %s %3.0f%%\n", c.Name, bar(c.Confidence), c.Confidence)
		}
	case models.SentimentRecord:
		fmt.Fprintf(b, "Overall: %s  score %.0f/100  confidence %.0f%%\n", rec.OverallSentiment, rec.Score, rec.Confidence)
		fmt.Fprintf(b, "  positive %s %3.0f%%\n", bar(rec.Breakdown.Positive), rec.Breakdown.Positive)
		fmt.Fprintf(b, "  neutral  %s %3.0f%%\n", bar(rec.Breakdown.Neutral), rec.Breakdown.Neutral)
		fmt.Fprintf(b, "  negative %s %3.0f%%\n", bar(rec.Breakdown.Negative), rec.Breakdown.Negative)
		for _, e := range rec.Emotions {
			fmt.Fprintf(b, "  %-8s %.0f\n", e.Name, e.Score)
		}
		if rec.Insights != "" {
			fmt.Fprintf(b, "\n%s\n", rec.Insights)
		}
	case models.TranslationRecord:
		fmt.Fprintf(b, "Original language: %s\n", rec.OriginalLanguage)
		for _, t := range rec.Translations {
			fmt.Fprintf(b, "\n-- %s (%s, %.0f%%) --\n%s\n", t.Language, t.Code, t.Confidence, t.Content)
		}
	}
}

// bar draws a percentage as a fixed width bar. Values are clamped to 0-100.
func bar(pct float64) string {
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	filled := int(pct / 100 * BAR_WIDTH)
	return strings.Repeat("#", filled) + strings.Repeat(".", BAR_WIDTH-filled)
}
