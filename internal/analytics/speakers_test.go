package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocallq/vocallq/internal/analytics"
)

func f64Ptr(f float64) *float64 { return &f }

func seg(speaker string, start, end float64, confidence, sentiment *float64) analytics.Segment {
	s := analytics.Segment{
		Text:       "hello",
		StartTime:  start,
		EndTime:    end,
		Confidence: confidence,
		Sentiment:  sentiment,
	}
	if speaker != "" {
		s.Speaker = &speaker
	}
	return s
}

func TestAggregateSpeakersTwoSpeakers(t *testing.T) {
	assert := assert.New(t)

	segments := []analytics.Segment{
		seg("A", 0, 10, f64Ptr(0.9), nil),
		seg("B", 10, 20, f64Ptr(0.8), f64Ptr(-0.5)),
	}

	out := analytics.AggregateSpeakers(segments)
	require.Len(t, out.Speakers, 2)
	assert.Equal(2, out.TotalSpeakers)

	a := out.Speakers[0]
	b := out.Speakers[1]
	// equal speaking time: stable sort keeps first-seen order
	assert.Equal("A", a.Name)
	assert.Equal("B", b.Name)

	assert.Equal(10.0, a.TotalTime)
	assert.Equal(10.0, b.TotalTime)
	assert.Equal(50, a.SpeakingPercentage)
	assert.Equal(50, b.SpeakingPercentage)
	assert.Equal(1, a.Turns)
	assert.Equal(90, a.AvgConfidence)
	assert.Equal(80, b.AvgConfidence)
	assert.Equal(0.0, a.AvgSentiment)
	assert.Equal(-0.5, b.AvgSentiment)
	assert.Equal("0m", out.TotalDuration) // 20s rounds down to zero minutes
}

func TestAggregateSpeakersEmptyInput(t *testing.T) {
	assert := assert.New(t)

	out := analytics.AggregateSpeakers(nil)
	assert.NotNil(out.Speakers)
	assert.Empty(out.Speakers)
	assert.Equal(0, out.TotalSpeakers)
	assert.Equal("0m", out.TotalDuration)
}

func TestAggregateSpeakersUnknownSpeakerSentinel(t *testing.T) {
	assert := assert.New(t)

	segments := []analytics.Segment{
		seg("", 0, 5, nil, nil),
		seg("", 5, 12, nil, nil),
		seg("", 12, 20, nil, nil),
	}

	out := analytics.AggregateSpeakers(segments)
	assert.Equal(1, out.TotalSpeakers)
	assert.Equal(analytics.UnknownSpeaker, out.Speakers[0].Name)
	assert.Equal(3, out.Speakers[0].Turns)
	assert.Equal(20.0, out.Speakers[0].TotalTime)
	assert.Equal(100, out.Speakers[0].SpeakingPercentage)
}

func TestAggregateSpeakersConservesSpeakingTime(t *testing.T) {
	assert := assert.New(t)

	segments := []analytics.Segment{
		seg("A", 0, 120, f64Ptr(0.95), f64Ptr(0.5)),
		seg("B", 120, 180, f64Ptr(0.7), nil),
		seg("A", 180, 195.5, f64Ptr(0.85), f64Ptr(-0.5)),
		seg("", 195.5, 200, nil, nil),
	}

	var want float64
	for _, s := range segments {
		want += s.EndTime - s.StartTime
	}

	out := analytics.AggregateSpeakers(segments)
	var got float64
	for _, sp := range out.Speakers {
		got += sp.TotalTime
	}
	assert.InDelta(want, got, 1e-9)
}

func TestAggregateSpeakersSortsByTotalTimeDescending(t *testing.T) {
	assert := assert.New(t)

	segments := []analytics.Segment{
		seg("A", 0, 10, nil, nil),
		seg("B", 10, 100, nil, nil),
		seg("C", 100, 130, nil, nil),
	}

	out := analytics.AggregateSpeakers(segments)
	assert.Equal([]string{"B", "C", "A"}, []string{
		out.Speakers[0].Name, out.Speakers[1].Name, out.Speakers[2].Name,
	})
}

func TestAggregateSpeakersZeroConfidenceIsPresent(t *testing.T) {
	assert := assert.New(t)

	// confidence 0 is present-but-zero and must enter the average
	segments := []analytics.Segment{
		seg("A", 0, 10, f64Ptr(0), nil),
		seg("A", 10, 20, f64Ptr(1), nil),
	}

	out := analytics.AggregateSpeakers(segments)
	assert.Equal(50, out.Speakers[0].AvgConfidence)
}

func TestAggregateSpeakersNegativeDurationClamped(t *testing.T) {
	assert := assert.New(t)

	segments := []analytics.Segment{
		seg("A", 10, 5, nil, nil), // malformed span counts as zero time
		seg("A", 10, 20, nil, nil),
	}

	out := analytics.AggregateSpeakers(segments)
	assert.Equal(10.0, out.Speakers[0].TotalTime)
	assert.Equal(2, out.Speakers[0].Turns)
}
