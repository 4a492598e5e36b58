package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/services"
	"github.com/vocallq/vocallq/internal/utils"
)

type fakeWebinarRepo struct {
	webinars map[string]*models.Webinar
	err      error
}

func (f *fakeWebinarRepo) Create(_ context.Context, w *models.Webinar) error {
	if f.webinars == nil {
		f.webinars = map[string]*models.Webinar{}
	}
	f.webinars[w.ID] = w
	return nil
}

func (f *fakeWebinarRepo) GetOwned(_ context.Context, webinarID, presenterID string) (*models.Webinar, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.webinars[webinarID]
	if !ok || w.PresenterID != presenterID {
		return nil, utils.ErrNotFound
	}
	return w, nil
}

func (f *fakeWebinarRepo) GetOwnedWithPresenter(ctx context.Context, webinarID, presenterID string) (*models.Webinar, error) {
	return f.GetOwned(ctx, webinarID, presenterID)
}

func (f *fakeWebinarRepo) ListByPresenter(_ context.Context, presenterID string) ([]models.Webinar, error) {
	var out []models.Webinar
	for _, w := range f.webinars {
		if w.PresenterID == presenterID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWebinarRepo) SetLiveTranscription(_ context.Context, webinarID string, enabled bool) error {
	if w, ok := f.webinars[webinarID]; ok {
		w.LiveTranscriptionEnabled = enabled
	}
	return nil
}

func (f *fakeWebinarRepo) SetRecordingURL(_ context.Context, webinarID, recordingURL string) error {
	if w, ok := f.webinars[webinarID]; ok {
		w.RecordingURL = &recordingURL
	}
	return nil
}

type fakeTranscriptRepo struct {
	transcripts map[string]*models.WebinarTranscript // keyed by webinar id
	segments    map[string][]models.TranscriptSegment
	err         error
}

func (f *fakeTranscriptRepo) Create(_ context.Context, t *models.WebinarTranscript) error {
	if f.transcripts == nil {
		f.transcripts = map[string]*models.WebinarTranscript{}
	}
	f.transcripts[t.WebinarID] = t
	return nil
}

func (f *fakeTranscriptRepo) GetByWebinar(_ context.Context, webinarID string) (*models.WebinarTranscript, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.transcripts[webinarID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return t, nil
}

func (f *fakeTranscriptRepo) ListSegmentsByWebinar(_ context.Context, webinarID string) ([]models.TranscriptSegment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.segments[webinarID], nil
}

func (f *fakeTranscriptRepo) SetStatus(_ context.Context, transcriptID string, status models.TranscriptStatus) error {
	for _, t := range f.transcripts {
		if t.ID == transcriptID {
			t.Status = status
		}
	}
	return nil
}

func (f *fakeTranscriptRepo) SaveResults(_ context.Context, t *models.WebinarTranscript, segments []models.TranscriptSegment) error {
	for webinarID, existing := range f.transcripts {
		if existing.ID == t.ID {
			t.WebinarID = webinarID
			f.transcripts[webinarID] = t
			if f.segments == nil {
				f.segments = map[string][]models.TranscriptSegment{}
			}
			f.segments[webinarID] = segments
		}
	}
	return nil
}

type fakeInsightsRepo struct {
	insights map[string]*models.WebinarInsights
}

func (f *fakeInsightsRepo) Upsert(_ context.Context, in *models.WebinarInsights) error {
	if f.insights == nil {
		f.insights = map[string]*models.WebinarInsights{}
	}
	f.insights[in.WebinarID] = in
	return nil
}

func (f *fakeInsightsRepo) GetByWebinar(_ context.Context, webinarID string) (*models.WebinarInsights, error) {
	in, ok := f.insights[webinarID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return in, nil
}

type fakeLiveRepo struct {
	turns map[string][]models.LiveTranscription
}

func (f *fakeLiveRepo) Insert(_ context.Context, turn *models.LiveTranscription) error {
	if f.turns == nil {
		f.turns = map[string][]models.LiveTranscription{}
	}
	f.turns[turn.WebinarID] = append(f.turns[turn.WebinarID], *turn)
	return nil
}

func (f *fakeLiveRepo) ListByWebinar(_ context.Context, webinarID string, _ int64) ([]models.LiveTranscription, error) {
	return f.turns[webinarID], nil
}

type fakeAttendanceRepo struct {
	rows map[string][]models.Attendance
}

func (f *fakeAttendanceRepo) ListByWebinar(_ context.Context, webinarID string) ([]models.Attendance, error) {
	return f.rows[webinarID], nil
}

const (
	testWebinarID = "6a0a87f0-7a5e-4a67-9a41-0f6fd2f5a001"
	testUserID    = "8e9d3b1c-32a4-4fbb-8f4e-aa1f5cf4b002"
	otherUserID   = "11111111-2222-3333-4444-555555555555"
)

func newAnalyticsFixture() (services.AnalyticsService, *fakeWebinarRepo, *fakeTranscriptRepo, *fakeInsightsRepo, *fakeAttendanceRepo, *fakeLiveRepo) {
	webinars := &fakeWebinarRepo{webinars: map[string]*models.Webinar{
		testWebinarID: {
			ID:          testWebinarID,
			Title:       "Q3 Product Launch!",
			StartTime:   time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
			PresenterID: testUserID,
			Presenter:   &models.User{ID: testUserID, Name: "Dana Presenter"},
		},
	}}
	transcripts := &fakeTranscriptRepo{}
	insights := &fakeInsightsRepo{}
	attendance := &fakeAttendanceRepo{}
	live := &fakeLiveRepo{}
	svc := services.NewAnalyticsService(webinars, transcripts, insights, attendance, live)
	return svc, webinars, transcripts, insights, attendance, live
}

func TestAnalyticsRequiresUser(t *testing.T) {
	assert := assert.New(t)
	svc, _, _, _, _, _ := newAnalyticsFixture()
	ctx := context.Background()

	_, err := svc.WebinarAnalytics(ctx, testWebinarID, "")
	assert.True(utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.SpeakerAnalytics(ctx, testWebinarID, "")
	assert.True(utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.EngagementTimeline(ctx, testWebinarID, "")
	assert.True(utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.TranscriptForDownload(ctx, testWebinarID, "")
	assert.True(utils.IsCode(err, utils.CodeUnauthorized))
}

func TestAnalyticsMergesMissingAndForeign(t *testing.T) {
	assert := assert.New(t)
	svc, _, _, _, _, _ := newAnalyticsFixture()
	ctx := context.Background()

	_, errMissing := svc.WebinarAnalytics(ctx, "no-such-webinar", testUserID)
	_, errForeign := svc.WebinarAnalytics(ctx, testWebinarID, otherUserID)

	assert.True(utils.IsCode(errMissing, utils.CodeNotFound))
	assert.True(utils.IsCode(errForeign, utils.CodeNotFound))
	// both cases must read identically to the caller
	var aeMissing, aeForeign *utils.AppError
	require.ErrorAs(t, errMissing, &aeMissing)
	require.ErrorAs(t, errForeign, &aeForeign)
	assert.Equal("Webinar not found or access denied", aeMissing.Message)
	assert.Equal(aeMissing.Message, aeForeign.Message)
}

func TestWebinarAnalyticsBeforePipeline(t *testing.T) {
	assert := assert.New(t)
	svc, _, _, _, _, _ := newAnalyticsFixture()

	data, err := svc.WebinarAnalytics(context.Background(), testWebinarID, testUserID)
	assert.NoError(err)
	assert.NotNil(data.Webinar)
	assert.Nil(data.Transcript)
	assert.Nil(data.Insights)
	assert.Empty(data.LiveTranscriptions)
	assert.Empty(data.AttendanceData)
}

func TestSpeakerAnalyticsNoSegments(t *testing.T) {
	assert := assert.New(t)
	svc, _, _, _, _, _ := newAnalyticsFixture()

	breakdown, err := svc.SpeakerAnalytics(context.Background(), testWebinarID, testUserID)
	assert.NoError(err)
	assert.NotNil(breakdown.Speakers)
	assert.Len(breakdown.Speakers, 0)
	assert.Equal("0m", breakdown.TotalDuration)
}

func TestSpeakerAnalyticsAggregates(t *testing.T) {
	assert := assert.New(t)
	svc, _, transcripts, _, _, _ := newAnalyticsFixture()

	speakerA, speakerB := "A", "B"
	conf := 0.8
	transcripts.segments = map[string][]models.TranscriptSegment{
		testWebinarID: {
			{Text: "hello everyone", StartTime: 0, EndTime: 30, Speaker: &speakerA, Confidence: &conf},
			{Text: "great question", StartTime: 30, EndTime: 60, Speaker: &speakerB, Confidence: &conf},
			{Text: "unattributed aside", StartTime: 60, EndTime: 90},
		},
	}

	breakdown, err := svc.SpeakerAnalytics(context.Background(), testWebinarID, testUserID)
	assert.NoError(err)
	assert.Len(breakdown.Speakers, 3)

	names := make([]string, 0, len(breakdown.Speakers))
	for _, s := range breakdown.Speakers {
		names = append(names, s.Name)
	}
	assert.Contains(names, "Unknown Speaker")
	assert.Equal("1m", breakdown.TotalDuration)
}

func TestEngagementTimelineRespectsOwnership(t *testing.T) {
	assert := assert.New(t)
	svc, _, transcripts, _, _, _ := newAnalyticsFixture()

	speaker := "A"
	transcripts.segments = map[string][]models.TranscriptSegment{
		testWebinarID: {
			{Text: "intro", StartTime: 0, EndTime: 20, Speaker: &speaker},
			{Text: "closing", StartTime: 610, EndTime: 640, Speaker: &speaker},
		},
	}

	points, err := svc.EngagementTimeline(context.Background(), testWebinarID, testUserID)
	assert.NoError(err)
	assert.Len(points, 2)
	assert.Equal("0:00", points[0].Time)
	assert.Equal("10:00", points[1].Time)

	_, err = svc.EngagementTimeline(context.Background(), testWebinarID, otherUserID)
	assert.True(utils.IsCode(err, utils.CodeNotFound))
}

func TestTranscriptForDownload(t *testing.T) {
	assert := assert.New(t)
	svc, _, transcripts, _, _, _ := newAnalyticsFixture()

	text := "Welcome everyone. Let's begin."
	confidence := 0.934
	duration := int64(3661)
	speaker := "A"
	transcripts.transcripts = map[string]*models.WebinarTranscript{
		testWebinarID: {
			ID:             "t-1",
			WebinarID:      testWebinarID,
			Status:         models.TranscriptCompleted,
			TranscriptText: &text,
			Confidence:     &confidence,
			AudioDuration:  &duration,
			Segments: []models.TranscriptSegment{
				{Text: "Welcome everyone.", StartTime: 0, EndTime: 5, Speaker: &speaker},
			},
		},
	}

	download, err := svc.TranscriptForDownload(context.Background(), testWebinarID, testUserID)
	assert.NoError(err)
	assert.Equal("Q3_Product_Launch__transcript.txt", download.Filename)
	assert.Contains(download.Content, "WEBINAR TRANSCRIPT")
	assert.Contains(download.Content, "Title: Q3 Product Launch!")
	assert.Contains(download.Content, "Duration: 61 minutes")
	assert.Contains(download.Content, "Confidence: 93%")
	assert.Contains(download.Content, "[0:00] A: Welcome everyone.")
	assert.NotContains(download.Content, "KEY HIGHLIGHTS")
}

func TestTranscriptForDownloadMissing(t *testing.T) {
	assert := assert.New(t)
	svc, _, _, _, _, _ := newAnalyticsFixture()

	_, err := svc.TranscriptForDownload(context.Background(), testWebinarID, testUserID)
	assert.True(utils.IsCode(err, utils.CodeNotFound))
	var ae *utils.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal("Transcript not found", ae.Message)
}

func TestAnalyticsRepoFaultIsInternal(t *testing.T) {
	assert := assert.New(t)
	svc, webinars, _, _, _, _ := newAnalyticsFixture()
	webinars.err = errors.New("connection refused")

	_, err := svc.WebinarAnalytics(context.Background(), testWebinarID, testUserID)
	assert.True(utils.IsCode(err, utils.CodeInternal))
}
