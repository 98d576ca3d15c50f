package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

const TRANSLATION_CHUNK_SIZE = 4500

var ErrNoTranslator = errors.New("no translator configured")

// supportedLanguages are the translation targets and detection candidates.
var supportedLanguages = map[string]lingua.Language{
	"en": lingua.English,
	"es": lingua.Spanish,
	"fr": lingua.French,
	"de": lingua.German,
	"it": lingua.Italian,
	"pt": lingua.Portuguese,
	"ru": lingua.Russian,
	"zh": lingua.Chinese,
	"ja": lingua.Japanese,
	"ko": lingua.Korean,
	"ar": lingua.Arabic,
}

var (
	detector     lingua.LanguageDetector
	detectorOnce sync.Once
)

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		langs := make([]lingua.Language, 0, len(supportedLanguages))
		for _, l := range supportedLanguages {
			langs = append(langs, l)
		}
		detector = lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build()
		slog.Info("[LanguageDetector] Detector initialized", slog.Int("languages", len(langs)))
	})
	return detector
}

// DetectLanguage returns the language name of text and whether detection
// was confident enough to report one.
func DetectLanguage(text string) (string, bool) {
	lang, ok := getDetector().DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}

// LanguageConfidence is the detector's 0-100 confidence that text is in the
// language with the given ISO 639-1 code.
func LanguageConfidence(text, code string) float64 {
	lang, ok := supportedLanguages[strings.ToLower(code)]
	if !ok {
		return 0
	}
	return math.Round(getDetector().ComputeLanguageConfidence(text, lang) * 100)
}

func LanguageName(code string) (string, bool) {
	lang, ok := supportedLanguages[strings.ToLower(code)]
	if !ok {
		return "", false
	}
	return lang.String(), true
}

type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// LLMTranslator translates with a chat model.
type LLMTranslator struct {
	llm Completer
}

func NewLLMTranslator(llm Completer) *LLMTranslator {
	return &LLMTranslator{llm: llm}
}

func (t *LLMTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf("Translate the user's text into %s. Return only the translation.", targetLanguage)
	return t.llm.Complete(ctx, prompt, text)
}

// TranslationService produces the translation record for a set of targets.
type TranslationService struct {
	translator Translator
	targets    []string
}

// NewTranslationService keeps only targets with a known language code.
func NewTranslationService(translator Translator, targets []string) *TranslationService {
	var known []string
	for _, code := range targets {
		code = strings.ToLower(strings.TrimSpace(code))
		if _, ok := supportedLanguages[code]; ok {
			known = append(known, code)
		} else {
			slog.Warn("[Translation] Ignoring unsupported target", slog.String("code", code))
		}
	}
	return &TranslationService{translator: translator, targets: known}
}

// Translate returns ErrNoTranslator when no translator is set. A target that
// fails to translate is skipped; if every target fails the last error is
// returned.
func (s *TranslationService) Translate(ctx context.Context, text string) (models.TranslationRecord, error) {
	if s == nil || s.translator == nil {
		return models.TranslationRecord{}, ErrNoTranslator
	}

	original, ok := DetectLanguage(text)
	if !ok {
		original = "Unknown"
	}

	rec := models.TranslationRecord{OriginalLanguage: original}
	var lastErr error
	for _, code := range s.targets {
		name, _ := LanguageName(code)
		if name == original {
			continue
		}
		translated, err := s.translateChunks(ctx, text, name)
		if err != nil {
			slog.Warn("[Translation] Translation failed",
				slog.String("target", code),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		rec.Translations = append(rec.Translations, models.Translation{
			Language:   name,
			Code:       code,
			Confidence: LanguageConfidence(translated, code),
			Content:    translated,
		})
	}

	if len(rec.Translations) == 0 {
		if lastErr == nil {
			lastErr = errors.New("no translation targets")
		}
		return models.TranslationRecord{}, lastErr
	}
	return rec, nil
}

func (s *TranslationService) translateChunks(ctx context.Context, text, target string) (string, error) {
	chunks := utils.ChunkText(text, TRANSLATION_CHUNK_SIZE)
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		translated, err := s.translator.Translate(ctx, chunk, target)
		if err != nil {
			return "", err
		}
		out = append(out, strings.TrimSpace(translated))
	}
	return strings.Join(out, " "), nil
}
