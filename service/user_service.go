package service

import (
	"context"
	"errors"
	"fmt"

	"bootcamp/events"
	"bootcamp/models"
)

// DefaultLeaderboardSize is used when a non-positive size is configured
const DefaultLeaderboardSize = 10

// userService implements the UserService interface
type userService struct {
	uowFactory      UnitOfWorkFactory
	leaderboardSize int
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, leaderboardSize int) UserService {
	if leaderboardSize <= 0 {
		leaderboardSize = DefaultLeaderboardSize
	}
	return &userService{
		uowFactory:      uowFactory,
		leaderboardSize: leaderboardSize,
	}
}

// GetOrCreateUser retrieves an existing user or creates a new one at zero points.
// Creation writes no ledger entry.
func (s *userService) GetOrCreateUser(ctx context.Context, userID string, displayName string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceError("check existing user", err)
	}

	if user != nil {
		return user, nil
	}

	// Unique constraint on user_id prevents duplicates
	user, err = uow.UserRepository().Create(ctx, userID, displayName)
	if errors.Is(err, ErrUserExists) {
		// A concurrent caller created it first; return their record
		uow.Rollback()
		return s.GetUser(ctx, userID)
	}
	if err != nil {
		return nil, persistenceError("create user", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:      user.UserID,
		DisplayName: user.DisplayName,
	})

	if err := uow.Commit(); err != nil {
		return nil, persistenceError("commit transaction", err)
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceError("get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return user, nil
}

// GetLeaderboard returns the top users by points
func (s *userService) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	if limit <= 0 {
		limit = s.leaderboardSize
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, persistenceError("get leaderboard", err)
	}

	return users, nil
}
