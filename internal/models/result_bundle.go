package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const ResultStatusSuccess = "success"

var ErrIncompleteRecord = errors.New("incomplete record")

// ResultBundle holds the per-format records for one ResultReference. It is
// read-only once built.
type ResultBundle struct {
	records  map[FormatKind]FormatRecord
	rejected map[FormatKind]error
}

func NewResultBundle(records ...FormatRecord) *ResultBundle {
	b := &ResultBundle{
		records:  make(map[FormatKind]FormatRecord, len(records)),
		rejected: map[FormatKind]error{},
	}
	for _, r := range records {
		if r != nil {
			b.records[r.Format()] = r
		}
	}
	return b
}

// Get returns the record for kind. A nil bundle has no records.
func (b *ResultBundle) Get(kind FormatKind) (FormatRecord, bool) {
	if b == nil {
		return nil, false
	}
	r, ok := b.records[kind]
	return r, ok
}

func (b *ResultBundle) Has(kind FormatKind) bool {
	_, ok := b.Get(kind)
	return ok
}

// Formats lists the present formats in tab order.
func (b *ResultBundle) Formats() []FormatKind {
	var out []FormatKind
	for _, k := range AllFormats {
		if b.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// Rejected returns why a format the service sent was dropped, or nil.
func (b *ResultBundle) Rejected(kind FormatKind) error {
	if b == nil {
		return nil
	}
	return b.rejected[kind]
}

func (b *ResultBundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// ResultEnvelope is the GET /result/{id} body.
type ResultEnvelope struct {
	Status      string             `json:"status"`
	Message     string             `json:"message,omitempty"`
	Summary     *SummaryRecord     `json:"summary,omitempty"`
	PDF         *PDFRecord         `json:"pdf,omitempty"`
	Keywords    *KeywordsRecord    `json:"keywords,omitempty"`
	Topics      *TopicsRecord      `json:"topics,omitempty"`
	Sentiment   *SentimentRecord   `json:"sentiment,omitempty"`
	Translation *TranslationRecord `json:"translation,omitempty"`
}

// Envelope renders the bundle in wire form with a success status.
func (b *ResultBundle) Envelope() ResultEnvelope {
	env := ResultEnvelope{Status: ResultStatusSuccess}
	if b == nil {
		return env
	}
	for _, r := range b.records {
		switch rec := r.(type) {
		case SummaryRecord:
			env.Summary = &rec
		case PDFRecord:
			env.PDF = &rec
		case KeywordsRecord:
			env.Keywords = &rec
		case TopicsRecord:
			env.Topics = &rec
		case SentimentRecord:
			env.Sentiment = &rec
		case TranslationRecord:
			env.Translation = &rec
		}
	}
	return env
}

func (b *ResultBundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Envelope())
}

// rawEnvelope keeps each format undecoded so one bad record does not
// poison the others.
type rawEnvelope struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	Summary     json.RawMessage `json:"summary"`
	PDF         json.RawMessage `json:"pdf"`
	Keywords    json.RawMessage `json:"keywords"`
	Topics      json.RawMessage `json:"topics"`
	Sentiment   json.RawMessage `json:"sentiment"`
	Translation json.RawMessage `json:"translation"`
}

// DecodedResult is a parsed GET /result/{id} body.
type DecodedResult struct {
	Status  string
	Message string
	Bundle  *ResultBundle
}

func (d DecodedResult) Success() bool { return d.Status == ResultStatusSuccess }

// DecodeResult parses a result body. Records with missing or null required
// fields are left out of the bundle and noted in Rejected.
func DecodeResult(data []byte) (DecodedResult, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return DecodedResult{}, fmt.Errorf("failed to decode result: %w", err)
	}

	bundle := NewResultBundle()
	parts := []struct {
		kind   FormatKind
		raw    json.RawMessage
		decode func(json.RawMessage) (FormatRecord, error)
	}{
		{FormatSummary, raw.Summary, decodeSummary},
		{FormatPDF, raw.PDF, decodePDF},
		{FormatKeywords, raw.Keywords, decodeKeywords},
		{FormatTopics, raw.Topics, decodeTopics},
		{FormatSentiment, raw.Sentiment, decodeSentiment},
		{FormatTranslation, raw.Translation, decodeTranslation},
	}
	for _, p := range parts {
		if isAbsent(p.raw) {
			continue
		}
		rec, err := p.decode(p.raw)
		if err != nil {
			bundle.rejected[p.kind] = err
			continue
		}
		bundle.records[p.kind] = rec
	}

	return DecodedResult{
		Status:  strings.TrimSpace(raw.Status),
		Message: raw.Message,
		Bundle:  bundle,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func incomplete(kind FormatKind, field string) error {
	return fmt.Errorf("%s: %w: missing %s", kind, ErrIncompleteRecord, field)
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

type wireSummary struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	KeyPoints []string `json:"keyPoints"`
}

func decodeSummary(raw json.RawMessage) (FormatRecord, error) {
	var w wireSummary
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", FormatSummary, err)
	}
	if blank(w.Title) {
		return nil, incomplete(FormatSummary, "title")
	}
	if blank(w.Content) {
		return nil, incomplete(FormatSummary, "content")
	}
	return SummaryRecord{Title: *w.Title, Content: *w.Content, KeyPoints: w.KeyPoints}, nil
}

type wirePDF struct {
	FileName *string `json:"fileName"`
	FileSize *string `json:"fileSize"`
	Content  *string `json:"content"`
}

func decodePDF(raw json.RawMessage) (FormatRecord, error) {
	var w wirePDF
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", FormatPDF, err)
	}
	switch {
	case blank(w.FileName):
		return nil, incomplete(FormatPDF, "fileName")
	case blank(w.FileSize):
		return nil, incomplete(FormatPDF, "fileSize")
	case blank(w.Content):
		return nil, incomplete(FormatPDF, "content")
	}
	return PDFRecord{FileName: *w.FileName, FileSize: *w.FileSize, Content: *w.Content}, nil
}

type wireKeyword struct {
	Word      *string  `json:"word"`
	Relevance *float64 `json:"relevance"`
}

// decodeKeywords accepts a bare array or an object with a "keywords" array.
func decodeKeywords(raw json.RawMessage) (FormatRecord, error) {
	var list []wireKeyword
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%s: %w", FormatKeywords, err)
		}
	} else {
		var obj struct {
			Keywords []wireKeyword `json:"keywords"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%s: %w", FormatKeywords, err)
		}
		if obj.Keywords == nil {
			return nil, incomplete(FormatKeywords, "keywords")
		}
		list = obj.Keywords
	}

	out := make([]Keyword, 0, len(list))
	for i, k := range list {
		if blank(k.Word) {
			return nil, incomplete(FormatKeywords, fmt.Sprintf("keywords[%d].word", i))
		}
		if k.Relevance == nil {
			return nil, incomplete(FormatKeywords, fmt.Sprintf("keywords[%d].relevance", i))
		}
		out = append(out, Keyword{Word: *k.Word, Relevance: *k.Relevance})
	}
	return KeywordsRecord{Keywords: out}, nil
}

type wireTopics struct {
	PrimaryTopic *string  `json:"primaryTopic"`
	Confidence   *float64 `json:"confidence"`
	Categories   []struct {
		Name       *string  `json:"name"`
		Confidence *float64 `json:"confidence"`
	} `json:"categories"`
}

func decodeTopics(raw json.RawMessage) (FormatRecord, error) {
	var w wireTopics
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", FormatTopics, err)
	}
	if blank(w.PrimaryTopic) {
		return nil, incomplete(FormatTopics, "primaryTopic")
	}
	if w.Confidence == nil {
		return nil, incomplete(FormatTopics, "confidence")
	}
	if w.Categories == nil {
		return nil, incomplete(FormatTopics, "categories")
	}
	rec := TopicsRecord{
		PrimaryTopic: *w.PrimaryTopic,
		Confidence:   *w.Confidence,
		Categories:   make([]TopicCategory, 0, len(w.Categories)),
	}
	for i, c := range w.Categories {
		if blank(c.Name) || c.Confidence == nil {
			return nil, incomplete(FormatTopics, fmt.Sprintf("categories[%d]", i))
		}
		rec.Categories = append(rec.Categories, TopicCategory{Name: *c.Name, Confidence: *c.Confidence})
	}
	return rec, nil
}

type wireSentiment struct {
	OverallSentiment *string  `json:"overallSentiment"`
	Score            *float64 `json:"score"`
	Confidence       *float64 `json:"confidence"`
	Breakdown        *struct {
		Positive *float64 `json:"positive"`
		Neutral  *float64 `json:"neutral"`
		Negative *float64 `json:"negative"`
	} `json:"breakdown"`
	Emotions []struct {
		Name  *string  `json:"name"`
		Score *float64 `json:"score"`
	} `json:"emotions"`
	Insights string `json:"insights"`
}

func decodeSentiment(raw json.RawMessage) (FormatRecord, error) {
	var w wireSentiment
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", FormatSentiment, err)
	}
	switch {
	case blank(w.OverallSentiment):
		return nil, incomplete(FormatSentiment, "overallSentiment")
	case w.Score == nil:
		return nil, incomplete(FormatSentiment, "score")
	case w.Confidence == nil:
		return nil, incomplete(FormatSentiment, "confidence")
	case w.Breakdown == nil:
		return nil, incomplete(FormatSentiment, "breakdown")
	case w.Breakdown.Positive == nil || w.Breakdown.Neutral == nil || w.Breakdown.Negative == nil:
		return nil, incomplete(FormatSentiment, "breakdown values")
	}
	rec := SentimentRecord{
		OverallSentiment: *w.OverallSentiment,
		Score:            *w.Score,
		Confidence:       *w.Confidence,
		Breakdown: SentimentBreakdown{
			Positive: *w.Breakdown.Positive,
			Neutral:  *w.Breakdown.Neutral,
			Negative: *w.Breakdown.Negative,
		},
		Emotions: make([]Emotion, 0, len(w.Emotions)),
		Insights: w.Insights,
	}
	for i, e := range w.Emotions {
		if blank(e.Name) || e.Score == nil {
			return nil, incomplete(FormatSentiment, fmt.Sprintf("emotions[%d]", i))
		}
		rec.Emotions = append(rec.Emotions, Emotion{Name: *e.Name, Score: *e.Score})
	}
	return rec, nil
}

type wireTranslation struct {
	OriginalLanguage *string `json:"originalLanguage"`
	Translations     []struct {
		Language   *string  `json:"language"`
		Code       *string  `json:"code"`
		Confidence *float64 `json:"confidence"`
		Content    *string  `json:"content"`
	} `json:"translations"`
}

func decodeTranslation(raw json.RawMessage) (FormatRecord, error) {
	var w wireTranslation
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", FormatTranslation, err)
	}
	if blank(w.OriginalLanguage) {
		return nil, incomplete(FormatTranslation, "originalLanguage")
	}
	if len(w.Translations) == 0 {
		return nil, incomplete(FormatTranslation, "translations")
	}
	rec := TranslationRecord{
		OriginalLanguage: *w.OriginalLanguage,
		Translations:     make([]Translation, 0, len(w.Translations)),
	}
	for i, t := range w.Translations {
		if blank(t.Language) || blank(t.Code) || t.Confidence == nil || blank(t.Content) {
			return nil, incomplete(FormatTranslation, fmt.Sprintf("translations[%d]", i))
		}
		rec.Translations = append(rec.Translations, Translation{
			Language:   *t.Language,
			Code:       *t.Code,
			Confidence: *t.Confidence,
			Content:    *t.Content,
		})
	}
	return rec, nil
}
