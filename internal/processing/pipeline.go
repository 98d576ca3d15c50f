// Package processing derives every result format from submitted content.
package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/sentiment"
)

var ErrEmptyContent = errors.New("no text available for processing")

// Submission is one validated POST /process body.
type Submission struct {
	Kind   models.InputKind
	Value  string
	File   *models.Blob
	Action models.FormatKind
}

type Processor struct {
	links       *LinkExtractor
	summarizer  *Summarizer
	translation *TranslationService
}

func NewProcessor(links *LinkExtractor, summarizer *Summarizer, translation *TranslationService) *Processor {
	if summarizer == nil {
		summarizer = NewSummarizer(nil)
	}
	return &Processor{links: links, summarizer: summarizer, translation: translation}
}

// Process builds the bundle for sub. Text formats are computed
// concurrently; a format that fails is left out of the bundle. Pictures
// only get a summary.
func (p *Processor) Process(ctx context.Context, sub Submission) (*models.ResultBundle, error) {
	start := time.Now()

	if sub.Kind == models.InputPicture {
		if sub.File == nil {
			return nil, errors.New("picture submission without file")
		}
		return models.NewResultBundle(ImageSummary(InspectImage(sub.File))), nil
	}

	doc, err := p.document(ctx, sub)
	if err != nil {
		return nil, err
	}
	if doc.Text == "" {
		return nil, ErrEmptyContent
	}

	var (
		mu      sync.Mutex
		records []models.FormatRecord
	)
	add := func(r models.FormatRecord) {
		mu.Lock()
		records = append(records, r)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		add(p.summarizer.Summarize(gctx, doc.Title, doc.Text))
		return nil
	})
	g.Go(func() error {
		add(ExtractKeywords(doc.Text))
		add(ClassifyTopics(doc.Text))
		return nil
	})
	g.Go(func() error {
		add(sentiment.Analyze(doc.Text))
		return nil
	})
	g.Go(func() error {
		rec, err := RenderPDF(doc.Title, doc.Text)
		if err != nil {
			slog.Warn("[Processor] PDF export failed", slog.String("error", err.Error()))
			return nil
		}
		add(rec)
		return nil
	})
	if p.translation != nil {
		g.Go(func() error {
			rec, err := p.translation.Translate(gctx, doc.Text)
			if err != nil {
				if !errors.Is(err, ErrNoTranslator) {
					slog.Warn("[Processor] Translation failed", slog.String("error", err.Error()))
				}
				return nil
			}
			add(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := models.NewResultBundle(records...)
	slog.Info("[Processor] Content processed",
		slog.String("type", string(sub.Kind)),
		slog.String("action", sub.Action.String()),
		slog.Int("words", doc.Words),
		slog.Int("formats", bundle.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return bundle, nil
}

func (p *Processor) document(ctx context.Context, sub Submission) (Document, error) {
	switch sub.Kind {
	case models.InputLink:
		if p.links == nil {
			return Document{}, errors.New("link extraction is not configured")
		}
		doc, err := p.links.Extract(ctx, sub.Value)
		if err != nil {
			return Document{}, fmt.Errorf("link extraction failed: %w", err)
		}
		return doc, nil
	case models.InputText:
		return TextDocument(sub.Value), nil
	default:
		return Document{}, fmt.Errorf("unsupported input type %q", sub.Kind)
	}
}
