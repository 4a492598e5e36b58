package postgres

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	// Upsert inserts the identity-provider principal or refreshes its profile
	// fields when the row already exists.
	Upsert(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetStripeConnectID(ctx context.Context, userID, connectID string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Upsert(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "profile_image", "updated_at"}),
		}).
		Create(u).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *userRepo) SetStripeConnectID(ctx context.Context, userID, connectID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("stripe_connect_id", connectID).Error
}
