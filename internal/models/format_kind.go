package models

import (
	"fmt"
	"strings"
)

// FormatKind names one derived output of the Processing Service. The same
// value is used as the submission action and as the result tab.
type FormatKind string

const (
	FormatSummary     FormatKind = "summary"
	FormatPDF         FormatKind = "pdf"
	FormatKeywords    FormatKind = "keywords"
	FormatTopics      FormatKind = "topics"
	FormatSentiment   FormatKind = "sentiment"
	FormatTranslation FormatKind = "translation"
)

// AllFormats lists every format in tab order.
var AllFormats = []FormatKind{
	FormatSummary,
	FormatPDF,
	FormatKeywords,
	FormatTopics,
	FormatSentiment,
	FormatTranslation,
}

func (f FormatKind) Valid() bool {
	for _, k := range AllFormats {
		if k == f {
			return true
		}
	}
	return false
}

func (f FormatKind) String() string { return string(f) }

// Title is the tab label.
func (f FormatKind) Title() string {
	switch f {
	case FormatSummary:
		return "Summary"
	case FormatPDF:
		return "PDF Export"
	case FormatKeywords:
		return "Keyword Extraction"
	case FormatTopics:
		return "Topic Classification"
	case FormatSentiment:
		return "Sentiment Analysis"
	case FormatTranslation:
		return "Multi-lingual Translation"
	default:
		return string(f)
	}
}

func ParseFormatKind(s string) (FormatKind, error) {
	f := FormatKind(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown format %q", s)
	}
	return f, nil
}
