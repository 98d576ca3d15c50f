package processing

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

const MAX_KEYWORDS = 10

var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an and or but in on at to for of with from into onto about above after again
		against all also because been before being below between both could does doing down
		during each even every few further have having here hers herself himself however into
		itself just like made make many more most much must myself next only other ours
		ourselves over same shall should some such than that their theirs them themselves then
		there these they this those through under until upon very want were what when where
		which while whom whose will with within without would your yours yourself yourselves
		said says still much well really thing things`) {
		stopWords[w] = struct{}{}
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// keywordCounts returns how often each candidate keyword occurs, in order of
// first appearance.
func keywordCounts(text string) (words []string, freq map[string]int) {
	freq = make(map[string]int)
	for _, w := range keywordPattern.FindAllString(strings.ToLower(text), -1) {
		if isStopWord(w) {
			continue
		}
		if freq[w] == 0 {
			words = append(words, w)
		}
		freq[w]++
	}
	return words, freq
}

// ExtractKeywords returns the ten most frequent words of four letters or
// more, with relevance as a percentage of the top word's count.
func ExtractKeywords(text string) models.KeywordsRecord {
	words, freq := keywordCounts(text)
	sort.SliceStable(words, func(i, j int) bool { return freq[words[i]] > freq[words[j]] })
	if len(words) > MAX_KEYWORDS {
		words = words[:MAX_KEYWORDS]
	}

	rec := models.KeywordsRecord{Keywords: make([]models.Keyword, 0, len(words))}
	if len(words) == 0 {
		return rec
	}
	top := float64(freq[words[0]])
	for _, w := range words {
		rec.Keywords = append(rec.Keywords, models.Keyword{
			Word:      capitalize(w),
			Relevance: math.Round(float64(freq[w]) / top * 100),
		})
	}
	return rec
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
