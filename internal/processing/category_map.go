package processing

// TopicKeywords maps each topic to the words that count towards it.
var TopicKeywords = map[string][]string{
	"Technology": {
		"technology", "software", "computer", "digital", "ai", "data", "code", "programming",
		"developer", "internet", "app", "cloud",
	},
	"Business & Finance": {
		"business", "company", "market", "financial", "investment", "sales", "profit",
		"economy", "startup", "revenue",
	},
	"Health": {
		"health", "medical", "doctor", "patient", "treatment", "disease", "wellness", "nutrition",
	},
	"Science": {
		"science", "research", "study", "experiment", "theory", "discovery", "scientific",
	},
	"Education": {
		"education", "learning", "student", "teacher", "school", "university", "course",
	},
	"Entertainment & Pop Culture": {
		"entertainment", "movie", "music", "game", "show", "celebrity", "fun", "television",
	},
	"Sports": {
		"sports", "game", "team", "player", "match", "championship", "tournament", "league",
	},
	"Politics & World Affairs": {
		"politics", "government", "election", "policy", "law", "parliament", "vote",
	},
}

// Topics lists TopicKeywords' keys in a fixed order so ties break the same
// way on every run.
var Topics = []string{
	"Technology",
	"Business & Finance",
	"Health",
	"Science",
	"Education",
	"Entertainment & Pop Culture",
	"Sports",
	"Politics & World Affairs",
}
