package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/vocallq/vocallq/internal/analytics"
	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/providers/transcription"
	mongorepo "github.com/vocallq/vocallq/internal/repositories/mongo"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/storage"
	"github.com/vocallq/vocallq/internal/utils"
)

// TranscriptionJobStream is the Redis Stream carrying queued recordings.
const TranscriptionJobStream = "transcription:jobs"

// TranscriptionJob is one queued batch transcription.
type TranscriptionJob struct {
	TranscriptID string
	WebinarID    string
	RecordingURL string
	Language     string
}

// LiveTurnInput is one caption turn posted from a live session.
type LiveTurnInput struct {
	TurnOrder           int64    `json:"turn_order"`
	Text                string   `json:"text"`
	IsFormatted         bool     `json:"is_formatted"`
	EndOfTurn           bool     `json:"end_of_turn"`
	EndOfTurnConfidence *float64 `json:"end_of_turn_confidence,omitempty"`
	Timestamp           float64  `json:"timestamp,omitempty"`
}

type TranscriptService interface {
	// ProcessRecording creates the PROCESSING transcript row and queues the
	// recording for the pipeline worker.
	ProcessRecording(ctx context.Context, webinarID, userID, recordingURL string) (*models.WebinarTranscript, error)
	// RunTranscription is the worker half: call the vendor, persist segments,
	// derive insights. Failures leave the transcript in FAILED state.
	RunTranscription(ctx context.Context, job TranscriptionJob) error
	// GetTranscript returns the transcript with ordered segments, or nil when
	// none exists yet.
	GetTranscript(ctx context.Context, webinarID string) (*models.WebinarTranscript, error)
	StartLiveTranscription(ctx context.Context, webinarID, userID string) error
	SaveLiveTurn(ctx context.Context, webinarID, userID string, in LiveTurnInput) (*models.LiveTranscription, error)
	// AppendLiveTurn persists a worker-produced turn; the socket that fed the
	// worker already ran the ownership check.
	AppendLiveTurn(ctx context.Context, webinarID string, in LiveTurnInput) (*models.LiveTranscription, error)
}

type transcriptService struct {
	webinars    pgrepo.WebinarRepo
	transcripts pgrepo.TranscriptRepo
	insights    pgrepo.InsightsRepo
	live        mongorepo.LiveTranscriptionRepository
	provider    transcription.Provider
	signer      storage.Signer
	jobs        *redis.Client
}

func NewTranscriptService(
	webinars pgrepo.WebinarRepo,
	transcripts pgrepo.TranscriptRepo,
	insights pgrepo.InsightsRepo,
	live mongorepo.LiveTranscriptionRepository,
	provider transcription.Provider,
	signer storage.Signer,
	jobs *redis.Client,
) TranscriptService {
	return &transcriptService{
		webinars:    webinars,
		transcripts: transcripts,
		insights:    insights,
		live:        live,
		provider:    provider,
		signer:      signer,
		jobs:        jobs,
	}
}

func (s *transcriptService) authorize(ctx context.Context, op, webinarID, userID string) (*models.Webinar, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	webinar, err := s.webinars.GetOwned(ctx, webinarID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Webinar not found or access denied", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to process recording", err)
	}
	return webinar, nil
}

func (s *transcriptService) ProcessRecording(ctx context.Context, webinarID, userID, recordingURL string) (*models.WebinarTranscript, error) {
	const op = "TranscriptService.ProcessRecording"

	if recordingURL == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recording_url is required", nil)
	}

	webinar, err := s.authorize(ctx, op, webinarID, userID)
	if err != nil {
		return nil, err
	}

	row := &models.WebinarTranscript{
		ID:        uuid.NewString(),
		WebinarID: webinarID,
		Status:    models.TranscriptProcessing,
	}
	if err := s.transcripts.Create(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to process recording", err)
	}

	language := webinar.TranscriptLanguage
	if language == "" {
		language = "en"
	}

	if err := s.jobs.XAdd(ctx, &redis.XAddArgs{
		Stream: TranscriptionJobStream,
		Values: map[string]any{
			"transcript_id": row.ID,
			"webinar_id":    webinarID,
			"recording_url": recordingURL,
			"language":      language,
		},
	}).Err(); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "Failed to queue recording", err)
	}

	return row, nil
}

func (s *transcriptService) RunTranscription(ctx context.Context, job TranscriptionJob) error {
	const op = "TranscriptService.RunTranscription"

	audioURL, err := s.resolveRecordingURL(ctx, job.RecordingURL)
	if err != nil {
		_ = s.transcripts.SetStatus(ctx, job.TranscriptID, models.TranscriptFailed)
		return utils.E(utils.CodeInvalidArgument, op, "failed to resolve recording", err)
	}

	start := time.Now()
	res, err := s.provider.Transcribe(ctx, audioURL, transcription.Config{
		AutoHighlights:    true,
		SentimentAnalysis: true,
		SpeakerLabels:     true,
		Punctuate:         true,
		FormatText:        true,
		LanguageCode:      job.Language,
	})
	if err != nil {
		_ = s.transcripts.SetStatus(ctx, job.TranscriptID, models.TranscriptFailed)
		return utils.E(utils.CodeUnavailable, op, "transcription vendor call failed", err)
	}
	if !res.Completed {
		_ = s.transcripts.SetStatus(ctx, job.TranscriptID, models.TranscriptFailed)
		return utils.E(utils.CodeUnavailable, op, "transcription did not complete", nil)
	}

	if err := s.saveResults(ctx, job.TranscriptID, res, time.Since(start)); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to persist transcript", err)
	}

	if err := s.generateInsights(ctx, job.WebinarID, res); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to persist insights", err)
	}
	return nil
}

// resolveRecordingURL signs private bucket references; plain URLs pass through.
func (s *transcriptService) resolveRecordingURL(ctx context.Context, recordingURL string) (string, error) {
	rest, ok := strings.CutPrefix(recordingURL, "gs://")
	if !ok {
		return recordingURL, nil
	}
	if s.signer == nil {
		return "", errors.New("recording is a bucket reference but no signer is configured")
	}
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("malformed bucket reference: " + recordingURL)
	}
	return s.signer.SignedGetURL(ctx, parts[1], time.Hour)
}

func (s *transcriptService) saveResults(ctx context.Context, transcriptID string, res *transcription.Result, elapsed time.Duration) error {
	duration := int64(math.Round(res.AudioDuration))
	processingMS := elapsed.Milliseconds()

	highlightsJSON, err := json.Marshal(res.Highlights)
	if err != nil {
		return err
	}
	sentimentsJSON, err := json.Marshal(res.Sentiments)
	if err != nil {
		return err
	}

	row := &models.WebinarTranscript{
		ID:               transcriptID,
		Status:           models.TranscriptCompleted,
		VendorID:         &res.VendorID,
		TranscriptText:   &res.Text,
		Confidence:       &res.Confidence,
		AudioDuration:    &duration,
		ProcessingTimeMS: &processingMS,
		AutoHighlights:   datatypes.JSON(highlightsJSON),
		SentimentResults: datatypes.JSON(sentimentsJSON),
	}

	segments := make([]models.TranscriptSegment, 0, len(res.Utterances))
	for _, u := range res.Utterances {
		seg := models.TranscriptSegment{
			ID:           uuid.NewString(),
			TranscriptID: transcriptID,
			Text:         u.Text,
			StartTime:    u.Start,
			EndTime:      u.End,
		}
		confidence := u.Confidence
		seg.Confidence = &confidence
		if u.Speaker != "" {
			speaker := u.Speaker
			seg.Speaker = &speaker
		}
		if u.Sentiment != nil {
			score := analytics.ScoreSentimentLabel(u.Sentiment)
			seg.Sentiment = &score
		}
		segments = append(segments, seg)
	}

	return s.transcripts.SaveResults(ctx, row, segments)
}

func (s *transcriptService) generateInsights(ctx context.Context, webinarID string, res *transcription.Result) error {
	labels := make([]string, 0, len(res.Sentiments))
	for _, sr := range res.Sentiments {
		labels = append(labels, sr.Sentiment)
	}

	speakers := make(map[string]struct{})
	for _, u := range res.Utterances {
		speakers[u.Speaker] = struct{}{}
	}

	highlights := make([]analytics.Highlight, 0, len(res.Highlights))
	for _, h := range res.Highlights {
		highlights = append(highlights, analytics.Highlight{Text: h.Text, Start: h.Start})
	}

	keywordsJSON, err := json.Marshal(analytics.TopKeywords(highlights, 10))
	if err != nil {
		return err
	}
	momentsJSON, err := json.Marshal(analytics.ExtractKeyMoments(highlights, 5))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.insights.Upsert(ctx, &models.WebinarInsights{
		ID:                    uuid.NewString(),
		WebinarID:             webinarID,
		OverallSentiment:      analytics.OverallSentiment(labels),
		QuestionCount:         analytics.CountQuestions(res.Text),
		TopKeywords:           datatypes.JSON(keywordsJSON),
		EngagementScore:       analytics.EngagementScore(len(res.Utterances), len(speakers)),
		AverageConfidence:     res.Confidence,
		KeyMoments:            datatypes.JSON(momentsJSON),
		AudienceParticipation: analytics.AudienceParticipation(len(speakers)),
		CreatedAt:             now,
		UpdatedAt:             now,
	})
}

func (s *transcriptService) GetTranscript(ctx context.Context, webinarID string) (*models.WebinarTranscript, error) {
	const op = "TranscriptService.GetTranscript"

	row, err := s.transcripts.GetByWebinar(ctx, webinarID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch transcript", err)
	}
	return row, nil
}

func (s *transcriptService) StartLiveTranscription(ctx context.Context, webinarID, userID string) error {
	const op = "TranscriptService.StartLiveTranscription"

	if _, err := s.authorize(ctx, op, webinarID, userID); err != nil {
		return err
	}
	if err := s.webinars.SetLiveTranscription(ctx, webinarID, true); err != nil {
		return utils.E(utils.CodeInternal, op, "Failed to start live transcription", err)
	}
	return nil
}

func (s *transcriptService) SaveLiveTurn(ctx context.Context, webinarID, userID string, in LiveTurnInput) (*models.LiveTranscription, error) {
	const op = "TranscriptService.SaveLiveTurn"

	if _, err := s.authorize(ctx, op, webinarID, userID); err != nil {
		return nil, err
	}
	return s.AppendLiveTurn(ctx, webinarID, in)
}

func (s *transcriptService) AppendLiveTurn(ctx context.Context, webinarID string, in LiveTurnInput) (*models.LiveTranscription, error) {
	const op = "TranscriptService.AppendLiveTurn"

	if in.Text == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "text is required", nil)
	}
	if in.TurnOrder < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "turn_order must be >= 0", nil)
	}

	timestamp := in.Timestamp
	if timestamp == 0 {
		timestamp = float64(time.Now().UTC().UnixMilli()) / 1000
	}

	turn := &models.LiveTranscription{
		WebinarID:           webinarID,
		TurnOrder:           in.TurnOrder,
		Text:                in.Text,
		IsFormatted:         in.IsFormatted,
		EndOfTurn:           in.EndOfTurn,
		EndOfTurnConfidence: in.EndOfTurnConfidence,
		Timestamp:           timestamp,
	}
	if err := s.live.Insert(ctx, turn); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to save live transcription", err)
	}
	return turn, nil
}
