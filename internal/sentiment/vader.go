// Package sentiment scores text with VADER.
package sentiment

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

const (
	POSITIVE_THRESHOLD = 0.20
	NEGATIVE_THRESHOLD = -0.20
)

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the markup and links.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	return utils.NormalizeWhitespace(RemoveLinks(plainText))
}

// Label maps a VADER compound score to Positive, Negative or Neutral.
func Label(compound float64) string {
	switch {
	case compound >= POSITIVE_THRESHOLD:
		return "Positive"
	case compound <= NEGATIVE_THRESHOLD:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Analyze builds the sentiment record for text. The breakdown is the share
// of sentences falling on each side of the thresholds.
func Analyze(text string) models.SentimentRecord {
	plain := ConvertMarkdownToText(text)
	if plain == "" {
		return models.SentimentRecord{
			OverallSentiment: "Neutral",
			Score:            50,
			Breakdown:        models.SentimentBreakdown{Neutral: 100},
			Emotions:         []models.Emotion{},
			Insights:         insights(0, 0),
		}
	}
	scores := analyzer.PolarityScores(plain)
	label := Label(scores.Compound)

	confidence := math.Abs(scores.Compound)
	if label == "Neutral" {
		confidence = scores.Neutral
	}

	return models.SentimentRecord{
		OverallSentiment: label,
		Score:            math.Round((scores.Compound + 1) * 50),
		Confidence:       math.Round(confidence * 100),
		Breakdown:        sentenceBreakdown(plain),
		Emotions:         detectEmotions(plain),
		Insights:         insights(scores.Compound, 1-scores.Neutral),
	}
}

func sentenceBreakdown(text string) models.SentimentBreakdown {
	sentences := utils.SplitSentences(text)
	if len(sentences) == 0 {
		return models.SentimentBreakdown{Neutral: 100}
	}
	var pos, neg int
	for _, s := range sentences {
		switch Label(analyzer.PolarityScores(s).Compound) {
		case "Positive":
			pos++
		case "Negative":
			neg++
		}
	}
	total := float64(len(sentences))
	positive := math.Round(float64(pos) / total * 100)
	negative := math.Round(float64(neg) / total * 100)
	return models.SentimentBreakdown{
		Positive: positive,
		Neutral:  100 - positive - negative,
		Negative: negative,
	}
}

var emotionLexicon = map[string][]string{
	"Joy":      {"happy", "joy", "love", "delight", "great", "wonderful", "excited", "enjoy", "fun", "glad"},
	"Trust":    {"trust", "reliable", "confident", "secure", "safe", "faith", "depend", "honest"},
	"Optimism": {"hope", "future", "improve", "promising", "opportunity", "better", "growth", "potential"},
	"Fear":     {"fear", "afraid", "risk", "threat", "danger", "worry", "anxious", "scared"},
	"Anger":    {"angry", "hate", "furious", "outrage", "annoyed", "rage", "frustrat"},
	"Sadness":  {"sad", "loss", "grief", "unhappy", "disappoint", "lonely", "sorrow", "regret"},
	"Surprise": {"surprise", "unexpected", "sudden", "shock", "amazing", "astonish"},
}

// detectEmotions counts lexicon stems and scales them against the strongest
// emotion. Emotions with no hits are left out.
func detectEmotions(text string) []models.Emotion {
	counts := make(map[string]int)
	maxCount := 0
	for _, w := range utils.Words(text) {
		for emotion, stems := range emotionLexicon {
			for _, stem := range stems {
				if strings.HasPrefix(w, stem) {
					counts[emotion]++
					if counts[emotion] > maxCount {
						maxCount = counts[emotion]
					}
					break
				}
			}
		}
	}

	emotions := make([]models.Emotion, 0, len(counts))
	for name, c := range counts {
		emotions = append(emotions, models.Emotion{
			Name:  name,
			Score: math.Round(float64(c) / float64(maxCount) * 100),
		})
	}
	sort.Slice(emotions, func(i, j int) bool {
		if emotions[i].Score != emotions[j].Score {
			return emotions[i].Score > emotions[j].Score
		}
		return emotions[i].Name < emotions[j].Name
	})
	return emotions
}

func insights(compound, subjectivity float64) string {
	var parts []string
	switch {
	case compound > 0.5:
		parts = append(parts, "The content expresses strong positive emotions.")
	case compound >= POSITIVE_THRESHOLD:
		parts = append(parts, "The content maintains a generally positive tone.")
	case compound < -0.5:
		parts = append(parts, "The content expresses strong negative emotions.")
	case compound <= NEGATIVE_THRESHOLD:
		parts = append(parts, "The content has a somewhat negative tone.")
	default:
		parts = append(parts, "The content maintains a neutral, balanced tone.")
	}

	switch {
	case subjectivity > 0.7:
		parts = append(parts, "The text is highly subjective with many opinions.")
	case subjectivity > 0.4:
		parts = append(parts, "The text contains a mix of facts and opinions.")
	default:
		parts = append(parts, "The text is mostly objective and factual.")
	}
	return strings.Join(parts, " ")
}
