package analytics

import "strings"

// Highlight is a vendor-identified salient span used to seed key moments and
// keyword extraction. Start is a second offset into the recording.
type Highlight struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
}

// KeyMoment is a notable point in the webinar derived from a highlight span.
type KeyMoment struct {
	Timestamp   float64 `json:"timestamp"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

// CountQuestions counts question marks in the full transcript text.
func CountQuestions(text string) int {
	return strings.Count(text, "?")
}

// TopKeywords returns up to n highlight texts in vendor rank order.
func TopKeywords(highlights []Highlight, n int) []string {
	keywords := []string{}
	for _, h := range highlights {
		if len(keywords) >= n {
			break
		}
		keywords = append(keywords, h.Text)
	}
	return keywords
}

// EngagementScore is a heuristic over interaction density:
// min(1, utterances * speakers / 500).
func EngagementScore(utteranceCount, speakerCount int) float64 {
	score := float64(utteranceCount*speakerCount) / 500
	if score > 1 {
		score = 1
	}
	return score
}

// AudienceParticipation normalizes non-presenter speaker count:
// min(1, (speakers - 1) / 5).
func AudienceParticipation(speakerCount int) float64 {
	score := float64(speakerCount-1) / 5
	if score > 1 {
		score = 1
	}
	return score
}

// ExtractKeyMoments maps up to n highlight spans to key moments.
func ExtractKeyMoments(highlights []Highlight, n int) []KeyMoment {
	moments := []KeyMoment{}
	for _, h := range highlights {
		if len(moments) >= n {
			break
		}
		moments = append(moments, KeyMoment{
			Timestamp:   h.Start,
			Description: h.Text,
			Type:        "highlight",
		})
	}
	return moments
}
