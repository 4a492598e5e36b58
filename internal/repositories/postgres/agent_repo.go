package postgres

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/utils"
	"gorm.io/gorm"
)

type AgentRepo interface {
	Create(ctx context.Context, a *models.AiAgent) error
	// GetOwned merges "absent" and "not yours" into utils.ErrNotFound, same as
	// the webinar lookup.
	GetOwned(ctx context.Context, agentID, userID string) (*models.AiAgent, error)
	ListByUser(ctx context.Context, userID string) ([]models.AiAgent, error)
	Update(ctx context.Context, a *models.AiAgent) error
}

type agentRepo struct {
	db *gorm.DB
}

func NewAgentRepo(db *gorm.DB) AgentRepo {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, a *models.AiAgent) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *agentRepo) GetOwned(ctx context.Context, agentID, userID string) (*models.AiAgent, error) {
	var row models.AiAgent
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", agentID, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *agentRepo) ListByUser(ctx context.Context, userID string) ([]models.AiAgent, error) {
	var rows []models.AiAgent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *agentRepo) Update(ctx context.Context, a *models.AiAgent) error {
	return r.db.WithContext(ctx).
		Model(&models.AiAgent{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"first_message": a.FirstMessage,
			"prompt":        a.Prompt,
		}).Error
}
