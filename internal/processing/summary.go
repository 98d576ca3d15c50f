package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

const (
	SUMMARY_SENTENCES = 3
	KEY_POINTS        = 3
	LLM_INPUT_LIMIT   = 12000
)

// Completer is a chat model. *clients.OpenAIClient satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const summaryPrompt = `Summarize the article the user sends.
Return only valid JSON, no markdown, in exactly this shape:
{"title": "short title", "content": "one paragraph summary", "keyPoints": ["point", "point", "point"]}`

type Summarizer struct {
	llm Completer
}

// NewSummarizer returns an extractive summarizer. With a non-nil llm it asks
// the model first and falls back to extraction on any failure.
func NewSummarizer(llm Completer) *Summarizer {
	return &Summarizer{llm: llm}
}

func (s *Summarizer) Summarize(ctx context.Context, title, text string) models.SummaryRecord {
	if s.llm != nil {
		rec, err := s.summarizeWithLLM(ctx, text)
		if err == nil {
			return rec
		}
		slog.Warn("[Summarizer] LLM summary failed, using extractive summary",
			slog.String("error", err.Error()))
	}
	return ExtractiveSummary(title, text)
}

func (s *Summarizer) summarizeWithLLM(ctx context.Context, text string) (models.SummaryRecord, error) {
	if len(text) > LLM_INPUT_LIMIT {
		text = text[:LLM_INPUT_LIMIT]
	}
	raw, err := s.llm.Complete(ctx, summaryPrompt, text)
	if err != nil {
		return models.SummaryRecord{}, err
	}
	var rec models.SummaryRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return models.SummaryRecord{}, fmt.Errorf("failed to parse summary: %w", err)
	}
	if strings.TrimSpace(rec.Title) == "" || strings.TrimSpace(rec.Content) == "" {
		return models.SummaryRecord{}, fmt.Errorf("summary missing title or content")
	}
	return rec, nil
}

// ExtractiveSummary takes the first three sentences as the summary and the
// most keyword-dense sentences, in reading order, as key points.
func ExtractiveSummary(title, text string) models.SummaryRecord {
	if strings.TrimSpace(title) == "" {
		title = "Summary"
	}
	sentences := utils.SplitSentences(text)

	lead := sentences
	if len(lead) > SUMMARY_SENTENCES {
		lead = lead[:SUMMARY_SENTENCES]
	}
	content := strings.Join(lead, " ")
	if content != "" && !strings.ContainsAny(content[len(content)-1:], ".!?") {
		content += "."
	}

	return models.SummaryRecord{
		Title:     title,
		Content:   content,
		KeyPoints: keyPoints(text, sentences),
	}
}

func keyPoints(text string, sentences []string) []string {
	if len(sentences) <= 1 {
		return nil
	}
	_, freq := keywordCounts(text)

	type weighted struct {
		idx    int
		weight float64
	}
	ranked := make([]weighted, 0, len(sentences))
	for i, s := range sentences {
		words, _ := keywordCounts(s)
		if len(words) == 0 {
			continue
		}
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		ranked = append(ranked, weighted{idx: i, weight: float64(total) / float64(len(utils.Words(s)))})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].weight > ranked[j].weight })
	if len(ranked) > KEY_POINTS {
		ranked = ranked[:KEY_POINTS]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].idx < ranked[j].idx })

	points := make([]string, 0, len(ranked))
	for _, r := range ranked {
		points = append(points, sentences[r.idx])
	}
	return points
}
