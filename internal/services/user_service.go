package services

import (
	"context"
	"errors"

	"github.com/vocallq/vocallq/internal/models"
	"github.com/vocallq/vocallq/internal/payments"
	pgrepo "github.com/vocallq/vocallq/internal/repositories/postgres"
	"github.com/vocallq/vocallq/internal/utils"
)

// SyncUserInput is the profile snapshot taken from a verified token.
type SyncUserInput struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

type UserService interface {
	// SyncUser upserts the identity-provider principal on first contact and
	// refreshes its profile fields afterwards.
	SyncUser(ctx context.Context, userID string, in SyncUserInput) (*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	// StripeConnectLink returns the OAuth URL a presenter visits to link a
	// Stripe account for paid webinars.
	StripeConnectLink(ctx context.Context, userID string) (string, error)
	SaveStripeConnectID(ctx context.Context, userID, connectID string) error
}

type userService struct {
	users  pgrepo.UserRepo
	stripe payments.ConnectConfig
}

func NewUserService(users pgrepo.UserRepo, stripe payments.ConnectConfig) UserService {
	return &userService{users: users, stripe: stripe}
}

func (s *userService) SyncUser(ctx context.Context, userID string, in SyncUserInput) (*models.User, error) {
	const op = "UserService.SyncUser"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	if in.Email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}

	user := &models.User{
		ID:           userID,
		Email:        in.Email,
		Name:         in.Name,
		ProfileImage: in.ProfileImage,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to sync user", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	const op = "UserService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to fetch user", err)
	}
	return user, nil
}

func (s *userService) StripeConnectLink(ctx context.Context, userID string) (string, error) {
	const op = "UserService.StripeConnectLink"

	if userID == "" {
		return "", utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return "", utils.E(utils.CodeInternal, op, "Failed to fetch user", err)
	}

	link, err := payments.ConnectOAuthLink(s.stripe, userID)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "Stripe Connect is not configured", err)
	}
	return link, nil
}

func (s *userService) SaveStripeConnectID(ctx context.Context, userID, connectID string) error {
	const op = "UserService.SaveStripeConnectID"

	if userID == "" {
		return utils.E(utils.CodeUnauthorized, op, "Unauthorized", nil)
	}
	if connectID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "connect account id is required", nil)
	}
	if err := s.users.SetStripeConnectID(ctx, userID, connectID); err != nil {
		return utils.E(utils.CodeInternal, op, "Failed to save connect account", err)
	}
	return nil
}
