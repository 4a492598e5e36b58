package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vocallq/vocallq/internal/cache"
	"github.com/vocallq/vocallq/internal/models"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/utils"
)

// webinarListTTL keeps the dashboard list fresh enough while absorbing the
// bursty reloads that follow a live session.
const webinarListTTL = 60 * time.Second

// CreateWebinarInput is the presenter-supplied part of a new webinar.
type CreateWebinarInput struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	StartTime          time.Time `json:"start_time"`
	TranscriptLanguage string    `json:"transcript_language"`
}

type WebinarService interface {
	Create(ctx context.Context, userID string, in CreateWebinarInput) (*models.Webinar, error)
	Get(ctx context.Context, webinarID, userID string) (*models.Webinar, error)
	List(ctx context.Context, userID string) ([]models.Webinar, error)
	SetRecording(ctx context.Context, webinarID, userID, recordingURL string) error
}

type webinarService struct {
	webinars pgrepo.WebinarRepo
	cache    cache.Cache
	log      *logrus.Logger
}

func NewWebinarService(webinars pgrepo.WebinarRepo, c cache.Cache, log *logrus.Logger) WebinarService {
	return &webinarService{webinars: webinars, cache: c, log: log}
}

func webinarListKey(userID string) string {
	return "webinars:list:" + userID
}

func (s *webinarService) Create(ctx context.Context, userID string, in CreateWebinarInput) (*models.Webinar, error) {
	const op = "WebinarService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	if in.StartTime.IsZero() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "start_time is required", nil)
	}

	language := in.TranscriptLanguage
	if language == "" {
		language = "en"
	}

	webinar := &models.Webinar{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		StartTime:          in.StartTime,
		PresenterID:        userID,
		TranscriptLanguage: language,
	}
	if err := s.webinars.Create(ctx, webinar); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to create webinar", err)
	}

	if err := s.cache.Del(ctx, webinarListKey(userID)); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("webinar list cache invalidation failed")
	}
	return webinar, nil
}

func (s *webinarService) Get(ctx context.Context, webinarID, userID string) (*models.Webinar, error) {
	const op = "WebinarService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	webinar, err := s.webinars.GetOwnedWithPresenter(ctx, webinarID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Webinar not found or access denied", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch webinar", err)
	}
	return webinar, nil
}

func (s *webinarService) List(ctx context.Context, userID string) ([]models.Webinar, error) {
	const op = "WebinarService.List"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}

	key := webinarListKey(userID)
	var cached []models.Webinar
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("webinar list cache read failed")
	}
	if hit {
		return cached, nil
	}

	rows, err := s.webinars.ListByPresenter(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch webinars", err)
	}
	if rows == nil {
		rows = []models.Webinar{}
	}

	if err := s.cache.SetJSON(ctx, key, rows, webinarListTTL); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("webinar list cache write failed")
	}
	return rows, nil
}

func (s *webinarService) SetRecording(ctx context.Context, webinarID, userID, recordingURL string) error {
	const op = "WebinarService.SetRecording"

	if userID == "" {
		return utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	if recordingURL == "" {
		return utils.E(utils.CodeInvalidArgument, op, "recording_url is required", nil)
	}
	if _, err := s.webinars.GetOwned(ctx, webinarID, userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Webinar not found or access denied", err)
		}
		return utils.E(utils.CodeInternal, op, "Failed to update webinar", err)
	}
	if err := s.webinars.SetRecordingURL(ctx, webinarID, recordingURL); err != nil {
		return utils.E(utils.CodeInternal, op, "Failed to update webinar", err)
	}
	return nil
}
