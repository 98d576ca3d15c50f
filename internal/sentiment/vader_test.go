package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelThresholds(t *testing.T) {
	tests := []struct {
		compound float64
		want     string
	}{
		{0.9, "Positive"},
		{0.20, "Positive"},
		{0.19, "Neutral"},
		{0, "Neutral"},
		{-0.19, "Neutral"},
		{-0.20, "Negative"},
		{-0.8, "Negative"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.compound), "compound %v", tt.compound)
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("# Title\n\nSome **bold** [link](https://example.com) and https://x.io/y here.")
	assert.Equal(t, "Title Some bold link and here.", got)
}

func TestAnalyzePositiveText(t *testing.T) {
	rec := Analyze("I love this wonderful product. It is great and makes me happy. The future looks promising!")

	assert.Equal(t, "Positive", rec.OverallSentiment)
	assert.Greater(t, rec.Score, 60.0)
	assert.InDelta(t, 100, rec.Breakdown.Positive+rec.Breakdown.Neutral+rec.Breakdown.Negative, 0.001)
	assert.Greater(t, rec.Breakdown.Positive, rec.Breakdown.Negative)
	assert.NotEmpty(t, rec.Emotions)
	assert.Equal(t, 100.0, rec.Emotions[0].Score)
	assert.Contains(t, rec.Insights, "positive")
}

func TestAnalyzeNegativeText(t *testing.T) {
	rec := Analyze("This is a terrible, awful disaster. I hate it and I am angry and sad.")

	assert.Equal(t, "Negative", rec.OverallSentiment)
	assert.Less(t, rec.Score, 40.0)
	assert.Contains(t, rec.Insights, "negative")
}

func TestAnalyzeEmptyText(t *testing.T) {
	rec := Analyze("")
	assert.Equal(t, "Neutral", rec.OverallSentiment)
	assert.Equal(t, 50.0, rec.Score)
	assert.Equal(t, 100.0, rec.Breakdown.Neutral)
	assert.Empty(t, rec.Emotions)
	assert.NotNil(t, rec.Emotions)
}
