package models

// FormatRecord is the fully populated result for one FormatKind.
type FormatRecord interface {
	Format() FormatKind
}

type SummaryRecord struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}

func (SummaryRecord) Format() FormatKind { return FormatSummary }

// PDFRecord carries the rendered document as base64 in Content.
type PDFRecord struct {
	FileName string `json:"fileName"`
	FileSize string `json:"fileSize"`
	Content  string `json:"content"`
}

func (PDFRecord) Format() FormatKind { return FormatPDF }

type Keyword struct {
	Word      string  `json:"word"`
	Relevance float64 `json:"relevance"`
}

// KeywordsRecord keeps the service's order, most relevant first.
type KeywordsRecord struct {
	Keywords []Keyword `json:"keywords"`
}

func (KeywordsRecord) Format() FormatKind { return FormatKeywords }

type TopicCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type TopicsRecord struct {
	PrimaryTopic string          `json:"primaryTopic"`
	Confidence   float64         `json:"confidence"`
	Categories   []TopicCategory `json:"categories"`
}

func (TopicsRecord) Format() FormatKind { return FormatTopics }

type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

type Emotion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type SentimentRecord struct {
	OverallSentiment string             `json:"overallSentiment"`
	Score            float64            `json:"score"`
	Confidence       float64            `json:"confidence"`
	Breakdown        SentimentBreakdown `json:"breakdown"`
	Emotions         []Emotion          `json:"emotions"`
	Insights         string             `json:"insights,omitempty"`
}

func (SentimentRecord) Format() FormatKind { return FormatSentiment }

type Translation struct {
	Language   string  `json:"language"`
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Content    string  `json:"content"`
}

type TranslationRecord struct {
	OriginalLanguage string        `json:"originalLanguage"`
	Translations     []Translation `json:"translations"`
}

func (TranslationRecord) Format() FormatKind { return FormatTranslation }
