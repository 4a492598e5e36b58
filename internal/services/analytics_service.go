package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"

	"github.com/vocallq/vocallq/internal/analytics"
	"github.com/vocallq/vocallq/internal/models"
	mongorepo "github.com/vocallq/vocallq/internal/repositories/mongo"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/utils"
)

// WebinarAnalyticsData is the full analytics read: webinar, transcript with
// ordered segments, derived insights, recent live turns, and attendance.
// Transcript and Insights are nil when not yet produced; that is valid data,
// not an error.
type WebinarAnalyticsData struct {
	Webinar            *models.Webinar            `json:"webinar"`
	Transcript         *models.WebinarTranscript  `json:"transcript,omitempty"`
	Insights           *models.WebinarInsights    `json:"insights,omitempty"`
	LiveTranscriptions []models.LiveTranscription `json:"liveTranscriptions"`
	AttendanceData     []models.Attendance        `json:"attendanceData"`
}

// TranscriptDownload is a rendered transcript export.
type TranscriptDownload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// AnalyticsService exposes the four analytics reads. Every operation requires
// the caller's user ID and re-runs the webinar ownership check on its own; a
// webinar that exists but belongs to another presenter is indistinguishable
// from one that does not exist.
type AnalyticsService interface {
	WebinarAnalytics(ctx context.Context, webinarID, userID string) (*WebinarAnalyticsData, error)
	SpeakerAnalytics(ctx context.Context, webinarID, userID string) (*analytics.SpeakerBreakdown, error)
	EngagementTimeline(ctx context.Context, webinarID, userID string) ([]analytics.TimelinePoint, error)
	TranscriptForDownload(ctx context.Context, webinarID, userID string) (*TranscriptDownload, error)
}

type analyticsService struct {
	webinars    pgrepo.WebinarRepo
	transcripts pgrepo.TranscriptRepo
	insights    pgrepo.InsightsRepo
	attendance  pgrepo.AttendanceRepo
	live        mongorepo.LiveTranscriptionRepository
}

func NewAnalyticsService(
	webinars pgrepo.WebinarRepo,
	transcripts pgrepo.TranscriptRepo,
	insights pgrepo.InsightsRepo,
	attendance pgrepo.AttendanceRepo,
	live mongorepo.LiveTranscriptionRepository,
) AnalyticsService {
	return &analyticsService{
		webinars:    webinars,
		transcripts: transcripts,
		insights:    insights,
		attendance:  attendance,
		live:        live,
	}
}

// authorizeWebinar performs the merged existence/ownership check.
func (s *analyticsService) authorizeWebinar(ctx context.Context, op, webinarID, userID string, withPresenter bool) (*models.Webinar, error) {
	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}

	var (
		webinar *models.Webinar
		err     error
	)
	if withPresenter {
		webinar, err = s.webinars.GetOwnedWithPresenter(ctx, webinarID, userID)
	} else {
		webinar, err = s.webinars.GetOwned(ctx, webinarID, userID)
	}
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Webinar not found or access denied", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch analytics data", err)
	}
	return webinar, nil
}

func (s *analyticsService) WebinarAnalytics(ctx context.Context, webinarID, userID string) (*WebinarAnalyticsData, error) {
	const op = "AnalyticsService.WebinarAnalytics"

	webinar, err := s.authorizeWebinar(ctx, op, webinarID, userID, true)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcripts.GetByWebinar(ctx, webinarID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch analytics data", err)
	}

	insights, err := s.insights.GetByWebinar(ctx, webinarID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch analytics data", err)
	}

	liveTurns, err := s.live.ListByWebinar(ctx, webinarID, mongorepo.DefaultTurnLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch analytics data", err)
	}

	attendanceData, err := s.attendance.ListByWebinar(ctx, webinarID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch analytics data", err)
	}

	return &WebinarAnalyticsData{
		Webinar:            webinar,
		Transcript:         transcript,
		Insights:           insights,
		LiveTranscriptions: liveTurns,
		AttendanceData:     attendanceData,
	}, nil
}

func (s *analyticsService) SpeakerAnalytics(ctx context.Context, webinarID, userID string) (*analytics.SpeakerBreakdown, error) {
	const op = "AnalyticsService.SpeakerAnalytics"

	if _, err := s.authorizeWebinar(ctx, op, webinarID, userID, false); err != nil {
		return nil, err
	}

	segments, err := s.transcripts.ListSegmentsByWebinar(ctx, webinarID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to calculate speaker analytics", err)
	}

	breakdown := analytics.AggregateSpeakers(toAnalyticsSegments(segments))
	return &breakdown, nil
}

func (s *analyticsService) EngagementTimeline(ctx context.Context, webinarID, userID string) ([]analytics.TimelinePoint, error) {
	const op = "AnalyticsService.EngagementTimeline"

	if _, err := s.authorizeWebinar(ctx, op, webinarID, userID, false); err != nil {
		return nil, err
	}

	segments, err := s.transcripts.ListSegmentsByWebinar(ctx, webinarID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to generate engagement timeline", err)
	}

	return analytics.BuildEngagementTimeline(toAnalyticsSegments(segments)), nil
}

func (s *analyticsService) TranscriptForDownload(ctx context.Context, webinarID, userID string) (*TranscriptDownload, error) {
	const op = "AnalyticsService.TranscriptForDownload"

	webinar, err := s.authorizeWebinar(ctx, op, webinarID, userID, true)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcripts.GetByWebinar(ctx, webinarID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Transcript not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to prepare transcript for download", err)
	}

	doc := analytics.TranscriptDocument{
		Title:      webinar.Title,
		Date:       webinar.StartTime,
		Confidence: confidencePercent(transcript.Confidence),
	}
	if webinar.Presenter != nil {
		doc.Presenter = webinar.Presenter.Name
	}
	if transcript.AudioDuration != nil {
		seconds := float64(*transcript.AudioDuration)
		doc.Duration = &seconds
	}
	if transcript.TranscriptText != nil {
		doc.FullText = *transcript.TranscriptText
	}

	for _, seg := range transcript.Segments {
		s := analytics.Segment{Speaker: seg.Speaker}
		doc.Segments = append(doc.Segments, analytics.DocumentSegment{
			Timestamp: analytics.FormatTimestamp(seg.StartTime),
			Speaker:   s.SpeakerLabel(),
			Text:      seg.Text,
		})
	}

	// highlights come from the stored vendor payload; absent payload omits
	// the section entirely
	if transcript.AutoHighlights != nil {
		var highlights []analytics.Highlight
		if json.Unmarshal(transcript.AutoHighlights, &highlights) == nil {
			texts := []string{}
			for _, h := range highlights {
				texts = append(texts, h.Text)
			}
			doc.Highlights = texts
		}
	}

	return &TranscriptDownload{
		Filename: exportFilename(webinar.Title),
		Content:  analytics.FormatTranscriptDocument(doc),
	}, nil
}

func toAnalyticsSegments(segments []models.TranscriptSegment) []analytics.Segment {
	out := make([]analytics.Segment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, analytics.Segment{
			Text:       seg.Text,
			StartTime:  seg.StartTime,
			EndTime:    seg.EndTime,
			Speaker:    seg.Speaker,
			Confidence: seg.Confidence,
			Sentiment:  seg.Sentiment,
		})
	}
	return out
}

func confidencePercent(confidence *float64) int {
	if confidence == nil {
		return 0
	}
	return int(math.Round(*confidence * 100))
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

func exportFilename(title string) string {
	return filenameSanitizer.ReplaceAllString(title, "_") + "_transcript.txt"
}
