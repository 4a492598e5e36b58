package transcription

import "context"

// Config carries the vendor flags the platform requests for every recording.
type Config struct {
	AutoHighlights    bool
	SentimentAnalysis bool
	SpeakerLabels     bool
	Punctuate         bool
	FormatText        bool
	LanguageCode      string
}

// Utterance is one speaker turn in the completed transcript. Offsets are in
// seconds (converted from the vendor's milliseconds). Sentiment is the label
// the vendor attached to the span, nil when sentiment analysis produced none.
type Utterance struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
	Speaker    string
	Sentiment  *string
}

// Highlight is an auto-detected salient span. Start is in seconds.
type Highlight struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
}

// SentimentResult is one span from the vendor's sentiment analysis pass.
type SentimentResult struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"` // POSITIVE | NEGATIVE | NEUTRAL
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Result is a completed-or-failed batch transcription.
type Result struct {
	VendorID      string
	Completed     bool
	Text          string
	Confidence    float64
	AudioDuration float64 // seconds
	Utterances    []Utterance
	Highlights    []Highlight
	Sentiments    []SentimentResult
}

// Provider submits a recording by URL and blocks until the vendor finishes.
type Provider interface {
	Transcribe(ctx context.Context, audioURL string, cfg Config) (*Result, error)
	Close() error
}
