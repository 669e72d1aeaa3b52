package service

import (
	"context"

	"bootcamp/models"

	"github.com/stretchr/testify/mock"
)

// MockPointsService is a mock implementation of PointsService
type MockPointsService struct {
	mock.Mock
}

func (m *MockPointsService) AwardPoints(ctx context.Context, req models.AwardRequest) (*models.AwardResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AwardResult), args.Error(1)
}

func (m *MockPointsService) AwardSubmission(ctx context.Context, userID, submissionID string, approved bool) (*models.AwardResult, error) {
	args := m.Called(ctx, userID, submissionID, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AwardResult), args.Error(1)
}

func (m *MockPointsService) AwardEventAttendance(ctx context.Context, userID, eventID, eventTitle string) (*models.AwardResult, error) {
	args := m.Called(ctx, userID, eventID, eventTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AwardResult), args.Error(1)
}

func (m *MockPointsService) SyncProfileCompletion(ctx context.Context, userID string, profile models.Profile) (*models.ProfileSyncResult, error) {
	args := m.Called(ctx, userID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileSyncResult), args.Error(1)
}

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetBreakdown(ctx context.Context, userID string) (*models.PointsBreakdown, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointsBreakdown), args.Error(1)
}

func (m *MockAuditService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PointTransaction), args.Error(1)
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, userID string, displayName string) (*models.User, error) {
	args := m.Called(ctx, userID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
