package postgres

import (
	"context"

	"github.com/vocallq/vocallq/internal/models"
	"gorm.io/gorm"
)

type AttendanceRepo interface {
	// ListByWebinar returns attendance rows joined with attendee identity.
	ListByWebinar(ctx context.Context, webinarID string) ([]models.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepo {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListByWebinar(ctx context.Context, webinarID string) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("webinar_id = ?", webinarID).
		Order("joined_at ASC").
		Find(&rows).Error
	return rows, err
}
