package transcription

import (
	"context"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

type AssemblyAI struct {
	c *aai.Client
}

func NewAssemblyAI(apiKey string) *AssemblyAI {
	return &AssemblyAI{c: aai.NewClient(apiKey)}
}

func (a *AssemblyAI) Close() error { return nil }

func (a *AssemblyAI) Transcribe(ctx context.Context, audioURL string, cfg Config) (*Result, error) {
	params := &aai.TranscriptOptionalParams{
		AutoHighlights:    aai.Bool(cfg.AutoHighlights),
		SentimentAnalysis: aai.Bool(cfg.SentimentAnalysis),
		SpeakerLabels:     aai.Bool(cfg.SpeakerLabels),
		Punctuate:         aai.Bool(cfg.Punctuate),
		FormatText:        aai.Bool(cfg.FormatText),
	}
	if cfg.LanguageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(cfg.LanguageCode)
	}

	t, err := a.c.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return nil, err
	}

	return mapTranscript(t), nil
}

// mapTranscript converts the vendor payload to the internal result: offsets
// switch from milliseconds to seconds and optional fields collapse to zero
// values.
func mapTranscript(t aai.Transcript) *Result {
	res := &Result{
		VendorID:      strOrEmpty(t.ID),
		Completed:     t.Status == aai.TranscriptStatusCompleted,
		Text:          strOrEmpty(t.Text),
		Confidence:    f64OrZero(t.Confidence),
		AudioDuration: f64OrZero(t.AudioDuration),
	}

	for _, s := range t.SentimentAnalysisResults {
		res.Sentiments = append(res.Sentiments, SentimentResult{
			Text:       strOrEmpty(s.Text),
			Sentiment:  string(s.Sentiment),
			Confidence: f64OrZero(s.Confidence),
			Speaker:    strOrEmpty(s.Speaker),
		})
	}

	for _, u := range t.Utterances {
		ut := Utterance{
			Text:       strOrEmpty(u.Text),
			Start:      msToSeconds(u.Start),
			End:        msToSeconds(u.End),
			Confidence: f64OrZero(u.Confidence),
			Speaker:    strOrEmpty(u.Speaker),
		}
		// the vendor reports sentiment as separate spans; attach the first
		// span starting inside this utterance
		for _, s := range t.SentimentAnalysisResults {
			start := msToSeconds(s.Start)
			if start >= ut.Start && start < ut.End {
				label := string(s.Sentiment)
				ut.Sentiment = &label
				break
			}
		}
		res.Utterances = append(res.Utterances, ut)
	}

	// AutoHighlightsResult is a value struct on the vendor payload; absent
	// results decode to an empty slice
	for _, h := range t.AutoHighlightsResult.Results {
		hl := Highlight{Text: strOrEmpty(h.Text)}
		if len(h.Timestamps) > 0 {
			hl.Start = msToSeconds(h.Timestamps[0].Start)
		}
		res.Highlights = append(res.Highlights, hl)
	}

	return res
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func f64OrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func msToSeconds(p *int64) float64 {
	if p == nil {
		return 0
	}
	return float64(*p) / 1000
}
