package utils

import (
	"regexp"
	"strings"
)

var (
	sentenceEnd  = regexp.MustCompile(`([.!?])\s+`)
	bracketNoise = regexp.MustCompile(`\[[^\]]*\]|\{[^}]*\}`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
	wordPattern  = regexp.MustCompile(`[\p{L}][\p{L}'-]*`)
)

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanWebText strips citation markers like [1] and {...} blocks left over
// from page extraction.
func CleanWebText(s string) string {
	return strings.TrimSpace(NormalizeWhitespace(bracketNoise.ReplaceAllString(s, "")))
}

// NormalizeParagraphs keeps paragraph breaks but no more than one blank line.
func NormalizeParagraphs(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = NormalizeWhitespace(l)
	}
	return strings.TrimSpace(manyNewlines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

// SplitSentences splits on terminal punctuation followed by whitespace.
func SplitSentences(text string) []string {
	text = NormalizeWhitespace(text)
	if text == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, s := range strings.Split(marked, "\x00") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Words returns the lowercase words of text.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Paragraphs splits on blank lines.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(NormalizeParagraphs(text), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
