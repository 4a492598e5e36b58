package transcription

import (
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTranscript(t *testing.T) {
	assert := assert.New(t)

	in := aai.Transcript{
		ID:            aai.String("aai-42"),
		Status:        aai.TranscriptStatusCompleted,
		Text:          aai.String("Welcome everyone. Any questions?"),
		Confidence:    aai.Float64(0.92),
		AudioDuration: aai.Float64(1800),
		Utterances: []aai.TranscriptUtterance{
			{
				Text:       aai.String("Welcome everyone."),
				Start:      aai.Int64(0),
				End:        aai.Int64(5000),
				Confidence: aai.Float64(0.95),
				Speaker:    aai.String("A"),
			},
			{
				Text:       aai.String("Any questions?"),
				Start:      aai.Int64(5000),
				End:        aai.Int64(8500),
				Confidence: aai.Float64(0.9),
				Speaker:    aai.String("B"),
			},
		},
		SentimentAnalysisResults: []aai.SentimentAnalysisResult{
			{
				Text:       aai.String("Welcome everyone."),
				Sentiment:  "POSITIVE",
				Confidence: aai.Float64(0.8),
				Start:      aai.Int64(0),
				End:        aai.Int64(5000),
				Speaker:    aai.String("A"),
			},
		},
		AutoHighlightsResult: aai.AutoHighlightsResult{
			Results: []aai.AutoHighlightResult{
				{
					Text: aai.String("quarterly roadmap"),
					Timestamps: []aai.Timestamp{
						{Start: aai.Int64(120000), End: aai.Int64(125000)},
					},
				},
			},
		},
	}

	res := mapTranscript(in)

	assert.Equal("aai-42", res.VendorID)
	assert.True(res.Completed)
	assert.Equal(0.92, res.Confidence)

	require.Len(t, res.Utterances, 2)
	assert.Equal(5.0, res.Utterances[0].End) // ms -> s
	assert.Equal(8.5, res.Utterances[1].End)

	// sentiment span attaches to the utterance it starts inside
	require.NotNil(t, res.Utterances[0].Sentiment)
	assert.Equal("POSITIVE", *res.Utterances[0].Sentiment)
	assert.Nil(res.Utterances[1].Sentiment)

	require.Len(t, res.Highlights, 1)
	assert.Equal("quarterly roadmap", res.Highlights[0].Text)
	assert.Equal(120.0, res.Highlights[0].Start)
}

func TestMapTranscriptWithoutHighlights(t *testing.T) {
	assert := assert.New(t)

	res := mapTranscript(aai.Transcript{
		ID:     aai.String("aai-43"),
		Status: aai.TranscriptStatusCompleted,
		Text:   aai.String("short recording"),
	})

	assert.True(res.Completed)
	assert.Empty(res.Highlights)
	assert.Empty(res.Utterances)
}

func TestMapTranscriptIncomplete(t *testing.T) {
	assert := assert.New(t)

	res := mapTranscript(aai.Transcript{
		ID:     aai.String("aai-44"),
		Status: aai.TranscriptStatusError,
	})

	assert.False(res.Completed)
}
