package analytics

// UnknownSpeaker is the sentinel label for segments the vendor could not
// attribute to a speaker. Such segments are grouped, never dropped.
const UnknownSpeaker = "Unknown Speaker"

// Segment is one contiguous span of transcribed speech. Speaker, Confidence,
// and Sentiment are optional: a confidence of exactly 0 is present-but-zero,
// which is why these are pointers and not zero-value coerced.
type Segment struct {
	Text       string   `json:"text"`
	StartTime  float64  `json:"startTime"` // seconds
	EndTime    float64  `json:"endTime"`   // seconds
	Speaker    *string  `json:"speaker,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Sentiment  *float64 `json:"sentiment,omitempty"`
}

// SpeakerLabel returns the speaker label, or UnknownSpeaker when absent.
func (s Segment) SpeakerLabel() string {
	if s.Speaker == nil || *s.Speaker == "" {
		return UnknownSpeaker
	}
	return *s.Speaker
}
