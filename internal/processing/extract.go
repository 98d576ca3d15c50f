package processing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

const (
	MAX_PAGE_BYTES   = 5 << 20
	WORDS_PER_MINUTE = 200
	FETCH_USER_AGENT = "Mozilla/5.0 (compatible; BlogDigest/1.0)"
)

// Document is the text pulled out of a submission.
type Document struct {
	Title    string
	Text     string
	Byline   string
	Excerpt  string
	Words    int
	ReadTime string
}

func newDocument(title, text string) Document {
	words := len(strings.Fields(text))
	minutes := max(1, (words+WORDS_PER_MINUTE/2)/WORDS_PER_MINUTE)
	return Document{
		Title:    strings.TrimSpace(title),
		Text:     text,
		Words:    words,
		ReadTime: fmt.Sprintf("%d min read", minutes),
	}
}

// TextDocument wraps pasted text.
func TextDocument(text string) Document {
	return newDocument("", utils.NormalizeParagraphs(text))
}

type LinkExtractor struct {
	client *http.Client
}

func NewLinkExtractor(timeout time.Duration) *LinkExtractor {
	return &LinkExtractor{client: &http.Client{Timeout: timeout}}
}

// Extract downloads rawURL and pulls out the article. Readability is tried
// first; if it finds no text the whole page body is used.
func (e *LinkExtractor) Extract(ctx context.Context, rawURL string) (Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return Document{}, fmt.Errorf("invalid url: %w", err)
	}
	html, err := e.fetch(ctx, pageURL.String())
	if err != nil {
		return Document{}, err
	}

	doc, err := parseArticle(html, pageURL)
	if err != nil {
		slog.Warn("[LinkExtractor] Readability failed, falling back to page text",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
	} else if doc.Text != "" {
		return doc, nil
	}

	doc, err = parsePage(html)
	if err != nil {
		return Document{}, err
	}
	if doc.Title == "" {
		doc.Title = rawURL
	}
	if doc.Text == "" {
		return Document{}, fmt.Errorf("no text found at %s", rawURL)
	}
	return doc, nil
}

func (e *LinkExtractor) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", FETCH_USER_AGENT)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch content from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not fetch content from URL: status code %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MAX_PAGE_BYTES))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func parseArticle(html []byte, pageURL *url.URL) (Document, error) {
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(html), pageURL)
	if err != nil {
		return Document{}, err
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse article html: %w", err)
	}

	doc := newDocument(article.Title, blockText(content.Selection, "h1,h2,h3,h4,p,li,blockquote,pre"))
	doc.Byline = article.Byline
	doc.Excerpt = article.Excerpt
	return doc, nil
}

func parsePage(html []byte) (Document, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	page.Find("script,style,noscript").Remove()

	var lines []string
	for _, line := range strings.Split(page.Find("body").Text(), "\n") {
		if line = utils.NormalizeWhitespace(line); line != "" {
			lines = append(lines, line)
		}
	}
	text := utils.CleanWebText(strings.Join(lines, " "))
	return newDocument(page.Find("title").First().Text(), text), nil
}

// blockText joins the text of the matching blocks as paragraphs.
func blockText(sel *goquery.Selection, blocks string) string {
	var paras []string
	sel.Find(blocks).Each(func(_ int, s *goquery.Selection) {
		if t := utils.CleanWebText(s.Text()); t != "" {
			paras = append(paras, t)
		}
	})
	return strings.Join(paras, "\n\n")
}
