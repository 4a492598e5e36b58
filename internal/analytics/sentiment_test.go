package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vocallq/vocallq/internal/analytics"
)

func strPtr(s string) *string { return &s }

func TestScoreSentimentLabel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.5, analytics.ScoreSentimentLabel(strPtr(analytics.SentimentPositive)))
	assert.Equal(-0.5, analytics.ScoreSentimentLabel(strPtr(analytics.SentimentNegative)))
	assert.Equal(0.0, analytics.ScoreSentimentLabel(strPtr(analytics.SentimentNeutral)))
	assert.Equal(0.0, analytics.ScoreSentimentLabel(strPtr("SOMETHING_ELSE")))
	assert.Equal(0.0, analytics.ScoreSentimentLabel(nil))
}

func TestOverallSentimentEmptySequence(t *testing.T) {
	assert.Equal(t, 0.0, analytics.OverallSentiment(nil))
	assert.Equal(t, 0.0, analytics.OverallSentiment([]string{}))
}

func TestOverallSentimentAllNeutralIsZero(t *testing.T) {
	labels := []string{analytics.SentimentNeutral, analytics.SentimentNeutral}
	assert.Equal(t, 0.0, analytics.OverallSentiment(labels))
}

func TestOverallSentimentMixAndBounds(t *testing.T) {
	assert := assert.New(t)

	labels := []string{
		analytics.SentimentPositive,
		analytics.SentimentPositive,
		analytics.SentimentNegative,
		analytics.SentimentNeutral,
	}
	assert.InDelta(0.25, analytics.OverallSentiment(labels), 1e-9)

	allPositive := []string{analytics.SentimentPositive, analytics.SentimentPositive}
	assert.Equal(1.0, analytics.OverallSentiment(allPositive))

	allNegative := []string{analytics.SentimentNegative}
	assert.Equal(-1.0, analytics.OverallSentiment(allNegative))

	// result stays inside [-1, 1] for any mix
	for _, labels := range [][]string{allPositive, allNegative, labels} {
		got := analytics.OverallSentiment(labels)
		assert.GreaterOrEqual(got, -1.0)
		assert.LessOrEqual(got, 1.0)
	}
}
