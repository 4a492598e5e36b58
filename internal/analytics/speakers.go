package analytics

import (
	"math"
	"sort"
)

// SpeakerStats is the per-speaker aggregate over one transcript.
type SpeakerStats struct {
	Name               string    `json:"name"`
	TotalTime          float64   `json:"totalTime"` // seconds
	Turns              int       `json:"turns"`
	AvgConfidence      int       `json:"avgConfidence"` // percentage
	AvgSentiment       float64   `json:"avgSentiment"`
	SpeakingPercentage int       `json:"speakingPercentage"`
	FormattedTime      string    `json:"formattedTime"`
	Segments           []Segment `json:"segments"`
}

// SpeakerBreakdown is the full result of a speaker aggregation run.
type SpeakerBreakdown struct {
	Speakers      []SpeakerStats `json:"speakers"`
	TotalSpeakers int            `json:"totalSpeakers"`
	TotalDuration string         `json:"totalDuration"`
}

type speakerAccum struct {
	totalTime       float64
	turns           int
	totalConfidence float64
	sentimentScores []float64
	segments        []Segment
}

// AggregateSpeakers folds ordered segments into one record per speaker:
// speaking time, turn count, average confidence, average sentiment, and the
// share of total speaking time. Grouping preserves first-seen speaker order so
// that the stable sort below has a deterministic tie-break. Percentages are
// rounded independently per speaker and may not sum to exactly 100; that is
// the contract, not a defect to normalize away.
//
// Zero segments short-circuit to an empty breakdown before any division.
func AggregateSpeakers(segments []Segment) SpeakerBreakdown {
	if len(segments) == 0 {
		return SpeakerBreakdown{
			Speakers:      []SpeakerStats{},
			TotalDuration: FormatDuration(0),
		}
	}

	byName := make(map[string]*speakerAccum)
	var order []string

	var totalDuration float64
	for _, seg := range segments {
		name := seg.SpeakerLabel()
		acc, ok := byName[name]
		if !ok {
			acc = &speakerAccum{}
			byName[name] = acc
			order = append(order, name)
		}

		duration := seg.EndTime - seg.StartTime
		if duration < 0 {
			duration = 0
		}

		acc.totalTime += duration
		acc.turns++
		if seg.Confidence != nil {
			acc.totalConfidence += *seg.Confidence
		}
		if seg.Sentiment != nil {
			acc.sentimentScores = append(acc.sentimentScores, *seg.Sentiment)
		}
		acc.segments = append(acc.segments, seg)

		totalDuration += duration
	}

	speakers := make([]SpeakerStats, 0, len(order))
	for _, name := range order {
		acc := byName[name]

		avgSentiment := 0.0
		if len(acc.sentimentScores) > 0 {
			var sum float64
			for _, score := range acc.sentimentScores {
				sum += score
			}
			avgSentiment = sum / float64(len(acc.sentimentScores))
		}

		percentage := 0
		if totalDuration > 0 {
			percentage = int(math.Round(acc.totalTime / totalDuration * 100))
		}

		speakers = append(speakers, SpeakerStats{
			Name:               name,
			TotalTime:          acc.totalTime,
			Turns:              acc.turns,
			AvgConfidence:      int(math.Round(acc.totalConfidence / float64(acc.turns) * 100)),
			AvgSentiment:       avgSentiment,
			SpeakingPercentage: percentage,
			FormattedTime:      FormatDuration(acc.totalTime),
			Segments:           acc.segments,
		})
	}

	// most active first; stable keeps first-seen order on ties
	sort.SliceStable(speakers, func(i, j int) bool {
		return speakers[i].TotalTime > speakers[j].TotalTime
	})

	return SpeakerBreakdown{
		Speakers:      speakers,
		TotalSpeakers: len(speakers),
		TotalDuration: FormatDuration(totalDuration),
	}
}
