package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bootcamp/events"
	"bootcamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_GetOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockEventBus := new(MockEventPublisher)

	// Configure unit of work
	mockUoW.SetRepositories(mockUserRepo, nil, mockEventBus)

	service := NewUserService(mockFactory, 10)

	existingUser := &models.User{
		UserID:      "alice",
		DisplayName: "Alice",
		Points:      40,
	}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit() expected since user exists and no changes are made

	mockUserRepo.On("GetByUserID", ctx, "alice").Return(existingUser, nil)

	user, err := service.GetOrCreateUser(ctx, "alice", "Alice")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_GetOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockTransactionRepo := new(MockPointTransactionRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, mockTransactionRepo, mockEventBus)

	service := NewUserService(mockFactory, 10)

	newUser := &models.User{
		UserID:      "bob",
		DisplayName: "Bob",
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// User doesn't exist on first check
	mockUserRepo.On("GetByUserID", ctx, "bob").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "bob", "Bob").Return(newUser, nil)
	mockEventBus.On("Publish", events.UserCreatedEvent{UserID: "bob", DisplayName: "Bob"}).Return()

	user, err := service.GetOrCreateUser(ctx, "bob", "Bob")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), user.Points)

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
	// Creation starts an empty ledger
	mockTransactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestUserService_GetOrCreateUser_CreateFails(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockEventBus := new(MockEventPublisher)
	mockUoW.SetRepositories(mockUserRepo, nil, mockEventBus)

	service := NewUserService(mockFactory, 10)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockUserRepo.On("GetByUserID", ctx, "bob").Return(nil, nil)
	mockUserRepo.On("Create", ctx, "bob", "").Return(nil, errors.New("connection reset"))

	user, err := service.GetOrCreateUser(ctx, "bob", "")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrPersistence)
	mockUoW.AssertNotCalled(t, "Commit")
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_GetOrCreateUser_LostCreateRace(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockEventBus := new(MockEventPublisher)
	mockUoW.SetRepositories(mockUserRepo, nil, mockEventBus)

	service := NewUserService(mockFactory, 10)
	winner := &models.User{UserID: "bob", DisplayName: "Bob"}

	mockFactory.On("Create").Return(mockUoW).Twice()
	mockUoW.On("Begin", ctx).Return(nil).Twice()
	mockUoW.On("Rollback").Return(nil)

	// Missing on the first read, created by someone else before our insert
	mockUserRepo.On("GetByUserID", ctx, "bob").Return(nil, nil).Once()
	mockUserRepo.On("Create", ctx, "bob", "Robert").Return(nil, fmt.Errorf("%w: bob", ErrUserExists)).Once()
	mockUserRepo.On("GetByUserID", ctx, "bob").Return(winner, nil).Once()

	user, err := service.GetOrCreateUser(ctx, "bob", "Robert")

	assert.NoError(t, err)
	assert.Equal(t, winner, user)
	mockFactory.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockUoW.AssertNotCalled(t, "Commit")
	mockEventBus.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockUserRepo := new(MockUserRepository)
		mockUoW.SetRepositories(mockUserRepo, nil, nil)

		service := NewUserService(mockFactory, 10)
		existing := &models.User{UserID: "alice", Points: 7}

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockUserRepo.On("GetByUserID", ctx, "alice").Return(existing, nil)

		user, err := service.GetUser(ctx, "alice")

		assert.NoError(t, err)
		assert.Equal(t, existing, user)
	})

	t.Run("not found", func(t *testing.T) {
		mockUoW := new(MockUnitOfWork)
		mockFactory := new(MockUnitOfWorkFactory)
		mockUserRepo := new(MockUserRepository)
		mockUoW.SetRepositories(mockUserRepo, nil, nil)

		service := NewUserService(mockFactory, 10)

		mockFactory.On("Create").Return(mockUoW)
		mockUoW.On("Begin", ctx).Return(nil)
		mockUoW.On("Rollback").Return(nil)
		mockUserRepo.On("GetByUserID", ctx, "ghost").Return(nil, nil)

		user, err := service.GetUser(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{"explicit limit", 3, 3},
		{"zero uses default", 0, 25},
		{"negative uses default", -1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUoW := new(MockUnitOfWork)
			mockFactory := new(MockUnitOfWorkFactory)
			mockUserRepo := new(MockUserRepository)
			mockUoW.SetRepositories(mockUserRepo, nil, nil)

			service := NewUserService(mockFactory, 25)
			leaders := []*models.User{{UserID: "a", Points: 30}, {UserID: "b", Points: 20}}

			mockFactory.On("Create").Return(mockUoW)
			mockUoW.On("Begin", ctx).Return(nil)
			mockUoW.On("Rollback").Return(nil)
			mockUserRepo.On("GetLeaderboard", ctx, tt.expectedLimit).Return(leaders, nil)

			result, err := service.GetLeaderboard(ctx, tt.limit)

			assert.NoError(t, err)
			assert.Equal(t, leaders, result)
			mockUserRepo.AssertExpectations(t)
		})
	}
}
