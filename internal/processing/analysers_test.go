package processing

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = `Artificial intelligence is changing software development. Developers use AI tools to write code faster.
Machine learning models help with testing and debugging code. Software teams adopt these tools quickly.

The future of software development looks promising. Developers still need creativity and judgement.`

func TestExtractKeywords(t *testing.T) {
	rec := ExtractKeywords(article)
	require.NotEmpty(t, rec.Keywords)
	assert.LessOrEqual(t, len(rec.Keywords), MAX_KEYWORDS)

	assert.Equal(t, "Software", rec.Keywords[0].Word)
	assert.Equal(t, 100.0, rec.Keywords[0].Relevance)
	for i := 1; i < len(rec.Keywords); i++ {
		assert.LessOrEqual(t, rec.Keywords[i].Relevance, rec.Keywords[i-1].Relevance)
	}
	for _, k := range rec.Keywords {
		assert.GreaterOrEqual(t, len(k.Word), 4)
		assert.False(t, isStopWord(strings.ToLower(k.Word)))
	}
}

func TestExtractKeywordsEmpty(t *testing.T) {
	rec := ExtractKeywords("a an the of")
	assert.NotNil(t, rec.Keywords)
	assert.Empty(t, rec.Keywords)
}

func TestClassifyTopics(t *testing.T) {
	rec := ClassifyTopics(article)
	assert.Equal(t, "Technology", rec.PrimaryTopic)
	assert.Equal(t, rec.Categories[0].Confidence, rec.Confidence)
	assert.LessOrEqual(t, len(rec.Categories), MAX_TOPICS)
	for _, c := range rec.Categories {
		assert.LessOrEqual(t, c.Confidence, 100.0)
	}

	none := ClassifyTopics("zzz qqq")
	assert.Equal(t, GENERAL_TOPIC, none.PrimaryTopic)
	assert.NotNil(t, none.Categories)
	assert.Empty(t, none.Categories)
}

func TestExtractiveSummary(t *testing.T) {
	rec := ExtractiveSummary("", article)
	assert.Equal(t, "Summary", rec.Title)
	assert.True(t, strings.HasPrefix(rec.Content, "Artificial intelligence is changing software development."))
	assert.Equal(t, 3, strings.Count(rec.Content, "."))
	assert.Len(t, rec.KeyPoints, KEY_POINTS)

	short := ExtractiveSummary("T", "no terminal punctuation")
	assert.Equal(t, "no terminal punctuation.", short.Content)
	assert.Nil(t, short.KeyPoints)
}

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestSummarizerUsesLLMAndFallsBack(t *testing.T) {
	good := &fakeLLM{reply: `{"title":"AI in dev","content":"Short.","keyPoints":["a"]}`}
	rec := NewSummarizer(good).Summarize(context.Background(), "", article)
	assert.Equal(t, "AI in dev", rec.Title)
	assert.Equal(t, []string{"a"}, rec.KeyPoints)

	for _, bad := range []*fakeLLM{
		{err: errors.New("rate limited")},
		{reply: "not json"},
		{reply: `{"title":"","content":"x"}`},
	} {
		rec := NewSummarizer(bad).Summarize(context.Background(), "Given", article)
		assert.Equal(t, "Given", rec.Title)
		assert.Equal(t, 1, bad.calls)
	}
}

func TestRenderPDF(t *testing.T) {
	rec, err := RenderPDF("My Blog: Post #1", article)
	require.NoError(t, err)
	assert.Equal(t, "My_Blog_Post_1.pdf", rec.FileName)
	assert.NotEmpty(t, rec.FileSize)

	raw, err := base64.StdEncoding.DecodeString(rec.Content)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))

	_, err = RenderPDF("x", "   ")
	assert.Error(t, err)
}

func TestPDFFileName(t *testing.T) {
	assert.Equal(t, "Document.pdf", PDFFileName("???"))
	assert.Equal(t, "hello_world.pdf", PDFFileName("hello world"))
}
