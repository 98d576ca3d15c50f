package processing

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

const page = `<!doctype html>
<html><head><title>Go at Scale</title><script>var x = 1;</script></head>
<body>
<nav>Home | About</nav>
<article>
<h1>Go at Scale</h1>
<p>Go is a programming language designed at Google for building reliable software at scale. Teams use it for cloud services and command line tools.</p>
<p>Its concurrency model makes network servers simple to write. The standard library covers most needs, and the toolchain compiles code quickly.</p>
<p>Many companies run Go in production, from startups to large technology firms, because it is easy to deploy and maintain.</p>
</article>
</body></html>`

func TestProcessText(t *testing.T) {
	p := NewProcessor(nil, nil, nil)
	b, err := p.Process(context.Background(), Submission{Kind: models.InputText, Value: article, Action: models.FormatSummary})
	require.NoError(t, err)

	for _, f := range []models.FormatKind{models.FormatSummary, models.FormatPDF, models.FormatKeywords, models.FormatTopics, models.FormatSentiment} {
		assert.True(t, b.Has(f), f)
	}
	assert.False(t, b.Has(models.FormatTranslation))
}

func TestProcessWithTranslation(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"Spanish": spanish}}
	p := NewProcessor(nil, nil, NewTranslationService(tr, []string{"es"}))

	b, err := p.Process(context.Background(), Submission{Kind: models.InputText, Value: article, Action: models.FormatTranslation})
	require.NoError(t, err)
	assert.True(t, b.Has(models.FormatTranslation))
}

func TestProcessEmptyText(t *testing.T) {
	_, err := NewProcessor(nil, nil, nil).Process(context.Background(), Submission{Kind: models.InputText, Value: "  \n "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestProcessLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	p := NewProcessor(NewLinkExtractor(5*time.Second), nil, nil)
	b, err := p.Process(context.Background(), Submission{Kind: models.InputLink, Value: srv.URL + "/post", Action: models.FormatKeywords})
	require.NoError(t, err)

	rec, ok := b.Get(models.FormatSummary)
	require.True(t, ok)
	summary := rec.(models.SummaryRecord)
	assert.Contains(t, summary.Content, "Go is a programming language")
	assert.NotContains(t, summary.Content, "var x")
}

func TestLinkExtractorErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewLinkExtractor(time.Second).Extract(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "404")
}

func TestParsePageFallback(t *testing.T) {
	doc, err := parsePage([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Go at Scale", doc.Title)
	assert.NotContains(t, doc.Text, "var x")
	assert.Contains(t, doc.Text, "Home | About")
	assert.Equal(t, "1 min read", doc.ReadTime)
}

func TestProcessPicture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	b, err := NewProcessor(nil, nil, nil).Process(context.Background(), Submission{
		Kind:   models.InputPicture,
		File:   &models.Blob{Name: "shot.png", MediaType: "image/png", Data: buf.Bytes()},
		Action: models.FormatSummary,
	})
	require.NoError(t, err)
	assert.Equal(t, []models.FormatKind{models.FormatSummary}, b.Formats())

	rec, _ := b.Get(models.FormatSummary)
	assert.Contains(t, rec.(models.SummaryRecord).Content, "PNG image, 40x30 pixels")
}

func TestInspectUnknownImage(t *testing.T) {
	info := InspectImage(&models.Blob{Name: "a.webp", MediaType: "image/webp", Data: []byte("RIFF....WEBP")})
	assert.Equal(t, "webp", info.Format)
	assert.Zero(t, info.Width)
	assert.Contains(t, ImageSummary(info).Content, "WEBP image")
}
