package analytics

// IntervalSeconds is the fixed engagement bucket width.
const IntervalSeconds = 300

// TimelinePoint is one 5-minute engagement bucket. Engagement is a heuristic
// capped at 1, not a calibrated probability.
type TimelinePoint struct {
	Time         string  `json:"time"`
	TimeSeconds  float64 `json:"timeSeconds"`
	Sentiment    float64 `json:"sentiment"`
	SpeakerCount int     `json:"speakerCount"`
	Confidence   float64 `json:"confidence"`
	Engagement   float64 `json:"engagement"`
	SegmentCount int     `json:"segmentCount"`
}

// BuildEngagementTimeline buckets segments into fixed 5-minute windows keyed
// by segment start time. Windows containing no segments are skipped rather
// than zero-filled, so the output is sparse and ordered by offset.
func BuildEngagementTimeline(segments []Segment) []TimelinePoint {
	points := []TimelinePoint{}
	if len(segments) == 0 {
		return points
	}

	var totalDuration float64
	for _, seg := range segments {
		if seg.EndTime > totalDuration {
			totalDuration = seg.EndTime
		}
	}

	for start := 0.0; start < totalDuration; start += IntervalSeconds {
		end := start + IntervalSeconds

		var bucket []Segment
		for _, seg := range segments {
			if seg.StartTime >= start && seg.StartTime < end {
				bucket = append(bucket, seg)
			}
		}
		if len(bucket) == 0 {
			continue
		}

		var sentimentSum, confidenceSum float64
		sentimentCount := 0
		speakers := make(map[string]struct{})
		for _, seg := range bucket {
			if seg.Sentiment != nil {
				sentimentSum += *seg.Sentiment
				sentimentCount++
			}
			if seg.Confidence != nil {
				confidenceSum += *seg.Confidence
			}
			speakers[seg.SpeakerLabel()] = struct{}{}
		}

		avgSentiment := 0.0
		if sentimentCount > 0 {
			avgSentiment = sentimentSum / float64(sentimentCount)
		}

		engagement := float64(len(speakers)*len(bucket)) / 10
		if engagement > 1 {
			engagement = 1
		}

		points = append(points, TimelinePoint{
			Time:         FormatTimestamp(start),
			TimeSeconds:  start,
			Sentiment:    avgSentiment,
			SpeakerCount: len(speakers),
			Confidence:   confidenceSum / float64(len(bucket)),
			Engagement:   engagement,
			SegmentCount: len(bucket),
		})
	}

	return points
}
