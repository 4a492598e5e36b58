package postgres

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/utils"
	"gorm.io/gorm"
)

type WebinarRepo interface {
	Create(ctx context.Context, w *models.Webinar) error
	// GetOwned returns the webinar only when it exists AND belongs to the
	// presenter. Both "absent" and "owned by someone else" surface as
	// utils.ErrNotFound so callers cannot distinguish the two.
	GetOwned(ctx context.Context, webinarID, presenterID string) (*models.Webinar, error)
	GetOwnedWithPresenter(ctx context.Context, webinarID, presenterID string) (*models.Webinar, error)
	ListByPresenter(ctx context.Context, presenterID string) ([]models.Webinar, error)
	SetLiveTranscription(ctx context.Context, webinarID string, enabled bool) error
	SetRecordingURL(ctx context.Context, webinarID, recordingURL string) error
}

type webinarRepo struct {
	db *gorm.DB
}

func NewWebinarRepo(db *gorm.DB) WebinarRepo {
	return &webinarRepo{db: db}
}

func (r *webinarRepo) Create(ctx context.Context, w *models.Webinar) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *webinarRepo) GetOwned(ctx context.Context, webinarID, presenterID string) (*models.Webinar, error) {
	var row models.Webinar
	err := r.db.WithContext(ctx).
		Where("id = ? AND presenter_id = ?", webinarID, presenterID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *webinarRepo) GetOwnedWithPresenter(ctx context.Context, webinarID, presenterID string) (*models.Webinar, error) {
	var row models.Webinar
	err := r.db.WithContext(ctx).
		Preload("Presenter").
		Where("id = ? AND presenter_id = ?", webinarID, presenterID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *webinarRepo) ListByPresenter(ctx context.Context, presenterID string) ([]models.Webinar, error) {
	var rows []models.Webinar
	err := r.db.WithContext(ctx).
		Where("presenter_id = ?", presenterID).
		Order("start_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *webinarRepo) SetLiveTranscription(ctx context.Context, webinarID string, enabled bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Webinar{}).
		Where("id = ?", webinarID).
		Update("live_transcription_enabled", enabled).Error
}

func (r *webinarRepo) SetRecordingURL(ctx context.Context, webinarID, recordingURL string) error {
	return r.db.WithContext(ctx).
		Model(&models.Webinar{}).
		Where("id = ?", webinarID).
		Update("recording_url", recordingURL).Error
}
