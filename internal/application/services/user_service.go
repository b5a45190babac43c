package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// UserService handles directory operations against user accounts.
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetByID resolves any non-deleted account, for use by other services.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req ports.UpdateProfileRequest) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, *req.Username)
		if err != nil && !entities.IsKind(err, entities.KindNotFound) {
			return nil, fmt.Errorf("check username availability: %w", err)
		}
		if existing != nil {
			return nil, entities.Conflictf("user with username %s already exists", *req.Username)
		}
	}

	changed := patchField(&user.Username, req.Username)
	changed = patchField(&user.FirstName, req.FirstName) || changed
	changed = patchField(&user.LastName, req.LastName) || changed

	if !changed {
		return user, nil
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User profile updated", "user_id", userID)
	return updated, nil
}

// UpdateRole changes another account's role. The handler layer restricts
// this to platform administrators.
func (s *UserService) UpdateRole(ctx context.Context, targetID uuid.UUID, roleValue string) (*entities.User, error) {
	role, err := entities.ParseRole(roleValue)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.Role == role {
		return user, nil
	}

	user.Role = role
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User role updated", "user_id", targetID, "role", role)
	return updated, nil
}
