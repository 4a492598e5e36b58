package postgres

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InsightsRepo interface {
	// Upsert creates or replaces the single insights row for a webinar.
	Upsert(ctx context.Context, in *models.WebinarInsights) error
	GetByWebinar(ctx context.Context, webinarID string) (*models.WebinarInsights, error)
}

type insightsRepo struct {
	db *gorm.DB
}

func NewInsightsRepo(db *gorm.DB) InsightsRepo {
	return &insightsRepo{db: db}
}

func (r *insightsRepo) Upsert(ctx context.Context, in *models.WebinarInsights) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "webinar_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"overall_sentiment",
				"question_count",
				"top_keywords",
				"engagement_score",
				"average_confidence",
				"key_moments",
				"audience_participation",
				"updated_at",
			}),
		}).
		Create(in).Error
}

func (r *insightsRepo) GetByWebinar(ctx context.Context, webinarID string) (*models.WebinarInsights, error) {
	var row models.WebinarInsights
	err := r.db.WithContext(ctx).Where("webinar_id = ?", webinarID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}
