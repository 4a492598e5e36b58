package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocallq/vocallq/internal/analytics"
)

func TestBuildEngagementTimelineEmpty(t *testing.T) {
	out := analytics.BuildEngagementTimeline(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestBuildEngagementTimelineSparseBuckets(t *testing.T) {
	assert := assert.New(t)

	// activity in the first and third 5-minute windows only
	segments := []analytics.Segment{
		seg("A", 10, 20, f64Ptr(0.9), f64Ptr(0.5)),
		seg("B", 30, 40, f64Ptr(0.7), nil),
		seg("A", 650, 700, f64Ptr(0.8), f64Ptr(-0.5)),
	}

	out := analytics.BuildEngagementTimeline(segments)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(0.0, first.TimeSeconds)
	assert.Equal("0:00", first.Time)
	assert.Equal(2, first.SegmentCount)
	assert.Equal(2, first.SpeakerCount)
	assert.InDelta(0.5, first.Sentiment, 1e-9) // only the non-null value counts
	assert.InDelta(0.8, first.Confidence, 1e-9)
	assert.InDelta(0.4, first.Engagement, 1e-9)

	third := out[1]
	assert.Equal(600.0, third.TimeSeconds)
	assert.Equal("10:00", third.Time)
	assert.Equal(1, third.SegmentCount)
	assert.Equal(1, third.SpeakerCount)
	assert.InDelta(-0.5, third.Sentiment, 1e-9)
}

func TestBuildEngagementTimelineNeverEmitsEmptyBucketAndCapsEngagement(t *testing.T) {
	assert := assert.New(t)

	var segments []analytics.Segment
	speakers := []string{"A", "B", "C"}
	// 30 segments from 3 speakers inside one window: engagement saturates at 1
	for i := 0; i < 30; i++ {
		start := float64(i * 2)
		segments = append(segments, seg(speakers[i%3], start, start+2, f64Ptr(0.9), nil))
	}
	// lonely segment far out, leaving many empty windows between
	segments = append(segments, seg("A", 3000, 3010, nil, nil))

	out := analytics.BuildEngagementTimeline(segments)
	for _, p := range out {
		assert.Positive(p.SegmentCount)
		assert.GreaterOrEqual(p.Engagement, 0.0)
		assert.LessOrEqual(p.Engagement, 1.0)
	}
	assert.Equal(1.0, out[0].Engagement)
	assert.Len(out, 2)
}

func TestBuildEngagementTimelineBucketBoundary(t *testing.T) {
	assert := assert.New(t)

	// a segment starting exactly at 300 belongs to the second window
	segments := []analytics.Segment{
		seg("A", 299.9, 310, nil, nil),
		seg("A", 300, 310, nil, nil),
	}

	out := analytics.BuildEngagementTimeline(segments)
	require.Len(t, out, 2)
	assert.Equal(1, out[0].SegmentCount)
	assert.Equal(1, out[1].SegmentCount)
	assert.Equal(300.0, out[1].TimeSeconds)
	assert.Equal("5:00", out[1].Time)
}

func TestBuildEngagementTimelineUnknownSpeakerCountsOnce(t *testing.T) {
	segments := []analytics.Segment{
		seg("", 0, 5, nil, nil),
		seg("", 10, 15, nil, nil),
		seg("A", 20, 25, nil, nil),
	}

	out := analytics.BuildEngagementTimeline(segments)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].SpeakerCount)
}
