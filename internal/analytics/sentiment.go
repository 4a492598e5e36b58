package analytics

// Sentiment labels as the transcription vendor reports them.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// ScoreSentimentLabel maps a vendor sentiment label to a coarse three-bucket
// score in [-1, 1]. Anything other than POSITIVE or NEGATIVE, including a
// missing label, scores 0.
func ScoreSentimentLabel(label *string) float64 {
	if label == nil {
		return 0
	}
	switch *label {
	case SentimentPositive:
		return 0.5
	case SentimentNegative:
		return -0.5
	default:
		return 0
	}
}

// OverallSentiment averages label polarity (+1, -1, 0) over the sequence.
// The empty sequence yields exactly 0, which is indistinguishable from an
// all-neutral sequence. That ambiguity is inherited from the scoring model.
func OverallSentiment(labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}

	var total float64
	for _, label := range labels {
		switch label {
		case SentimentPositive:
			total++
		case SentimentNegative:
			total--
		}
	}
	return total / float64(len(labels))
}
