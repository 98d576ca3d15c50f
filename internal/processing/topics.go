package processing

import (
	"sort"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
	"github.com/srinijamadireddy19/Blog-Digest/internal/utils"
)

const (
	TOPIC_HIT_WEIGHT = 10
	MAX_TOPICS       = 4
	GENERAL_TOPIC    = "General"
)

// ClassifyTopics scores each topic by keyword hits, ten points a hit capped
// at 100, and keeps the best four.
func ClassifyTopics(text string) models.TopicsRecord {
	freq := make(map[string]int)
	for _, w := range utils.Words(text) {
		freq[w]++
	}

	type scored struct {
		name  string
		score int
		order int
	}
	var ranked []scored
	for i, topic := range Topics {
		score := 0
		for _, kw := range TopicKeywords[topic] {
			score += freq[kw] * TOPIC_HIT_WEIGHT
		}
		if score > 0 {
			ranked = append(ranked, scored{name: topic, score: min(score, 100), order: i})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})
	if len(ranked) > MAX_TOPICS {
		ranked = ranked[:MAX_TOPICS]
	}

	rec := models.TopicsRecord{
		PrimaryTopic: GENERAL_TOPIC,
		Categories:   make([]models.TopicCategory, 0, len(ranked)),
	}
	for _, r := range ranked {
		rec.Categories = append(rec.Categories, models.TopicCategory{Name: r.name, Confidence: float64(r.score)})
	}
	if len(rec.Categories) > 0 {
		rec.PrimaryTopic = rec.Categories[0].Name
		rec.Confidence = rec.Categories[0].Confidence
	}
	return rec
}
