package postgres

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/utils"
	"gorm.io/gorm"
)

type TranscriptRepo interface {
	Create(ctx context.Context, t *models.WebinarTranscript) error
	// GetByWebinar loads the transcript with its segments ordered by start time.
	GetByWebinar(ctx context.Context, webinarID string) (*models.WebinarTranscript, error)
	// ListSegmentsByWebinar returns all segments for the webinar's transcript,
	// ordered by start time ascending.
	ListSegmentsByWebinar(ctx context.Context, webinarID string) ([]models.TranscriptSegment, error)
	SetStatus(ctx context.Context, transcriptID string, status models.TranscriptStatus) error
	// SaveResults updates the completed transcript fields and inserts its
	// segments in one transaction.
	SaveResults(ctx context.Context, t *models.WebinarTranscript, segments []models.TranscriptSegment) error
}

type transcriptRepo struct {
	db *gorm.DB
}

func NewTranscriptRepo(db *gorm.DB) TranscriptRepo {
	return &transcriptRepo{db: db}
}

func (r *transcriptRepo) Create(ctx context.Context, t *models.WebinarTranscript) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transcriptRepo) GetByWebinar(ctx context.Context, webinarID string) (*models.WebinarTranscript, error) {
	var row models.WebinarTranscript
	err := r.db.WithContext(ctx).
		Preload("Segments", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("webinar_id = ?", webinarID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *transcriptRepo) ListSegmentsByWebinar(ctx context.Context, webinarID string) ([]models.TranscriptSegment, error) {
	var rows []models.TranscriptSegment
	err := r.db.WithContext(ctx).
		Joins("JOIN webinar_transcripts ON webinar_transcripts.id = transcript_segments.transcript_id").
		Where("webinar_transcripts.webinar_id = ?", webinarID).
		Order("transcript_segments.start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *transcriptRepo) SetStatus(ctx context.Context, transcriptID string, status models.TranscriptStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.WebinarTranscript{}).
		Where("id = ?", transcriptID).
		Update("status", status).Error
}

func (r *transcriptRepo) SaveResults(ctx context.Context, t *models.WebinarTranscript, segments []models.TranscriptSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":             t.Status,
			"vendor_id":          t.VendorID,
			"transcript_text":    t.TranscriptText,
			"confidence":         t.Confidence,
			"audio_duration":     t.AudioDuration,
			"processing_time_ms": t.ProcessingTimeMS,
			"auto_highlights":    t.AutoHighlights,
			"sentiment_results":  t.SentimentResults,
		}
		if err := tx.Model(&models.WebinarTranscript{}).
			Where("id = ?", t.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		if len(segments) == 0 {
			return nil
		}
		return tx.Create(&segments).Error
	})
}
