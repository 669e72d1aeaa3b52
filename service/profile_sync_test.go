package service

import (
	"context"
	"testing"

	"bootcamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileCompletionPoints(t *testing.T) {
	full := models.Profile{
		Name:          "Ada",
		StudentNumber: "s123",
		Course:        "CS",
		Year:          "2",
		LinkedIn:      "in/ada",
		GitHub:        "ada",
		AIInterest:    "agents",
		Phone:         "0123",
		Motivation:    "ship things",
	}

	tests := []struct {
		name     string
		profile  models.Profile
		expected int64
	}{
		{"empty", models.Profile{}, 0},
		{"one field floors", models.Profile{Name: "Ada"}, 5},
		{"whitespace is empty", models.Profile{Name: "   ", GitHub: "\t"}, 0},
		{"five fields", models.Profile{Name: "a", StudentNumber: "b", Course: "c", Year: "d", LinkedIn: "e"}, 27},
		{"all fields", full, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProfileCompletionPoints(tt.profile))
		})
	}
}

func TestPointsService_SyncProfileCompletion(t *testing.T) {
	ctx := context.Background()
	profile := models.Profile{Name: "Ada", GitHub: "ada", Phone: "0123"}

	t.Run("awards the difference", func(t *testing.T) {
		svc, m := createTestPointsService(5)

		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Commit").Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.userRepo.On("GetByUserID", ctx, "alice").Return(&models.User{UserID: "alice", Points: 40, Version: 4}, nil)
		m.transactionRepo.On("SumBySource", ctx, "alice", models.PointSourceProfileCompletion).Return(int64(5), nil)
		m.userRepo.On("UpdatePoints", ctx, "alice", int64(51), int64(4)).Return(nil)
		m.transactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *models.PointTransaction) bool {
			return tx.Source == models.PointSourceProfileCompletion &&
				tx.PointsChange == 11 &&
				tx.Metadata[MetadataPreviousProfilePoints] == int64(5) &&
				tx.Metadata[MetadataNewProfilePoints] == int64(16) &&
				tx.Metadata[MetadataCompletedFields] == 3 &&
				tx.Metadata[MetadataTotalFields] == models.ProfileFieldCount
		})).Return(nil)
		m.eventBus.On("Publish", mock.Anything).Return()

		result, err := svc.SyncProfileCompletion(ctx, "alice", profile)

		require.NoError(t, err)
		assert.Equal(t, 3, result.CompletedFields)
		assert.Equal(t, int64(16), result.ExpectedPoints)
		assert.Equal(t, int64(5), result.ExistingPoints)
		assert.Equal(t, int64(11), result.Delta)
		require.NotNil(t, result.Award)
		assert.Equal(t, int64(51), result.Award.NewPoints)
		m.assertAll(t)
	})

	t.Run("no entry when already in sync", func(t *testing.T) {
		svc, m := createTestPointsService(5)

		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.userRepo.On("GetByUserID", ctx, "alice").Return(&models.User{UserID: "alice", Points: 16}, nil)
		m.transactionRepo.On("SumBySource", ctx, "alice", models.PointSourceProfileCompletion).Return(int64(16), nil)

		result, err := svc.SyncProfileCompletion(ctx, "alice", profile)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Delta)
		assert.Nil(t, result.Award)
		m.userRepo.AssertNotCalled(t, "UpdatePoints", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.transactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit")
		m.assertAll(t)
	})

	t.Run("deducts when fields are cleared", func(t *testing.T) {
		svc, m := createTestPointsService(5)

		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Commit").Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.userRepo.On("GetByUserID", ctx, "alice").Return(&models.User{UserID: "alice", Points: 50}, nil)
		m.transactionRepo.On("SumBySource", ctx, "alice", models.PointSourceProfileCompletion).Return(int64(50), nil)
		m.userRepo.On("UpdatePoints", ctx, "alice", int64(0), int64(0)).Return(nil)
		m.transactionRepo.On("Record", ctx, mock.MatchedBy(func(tx *models.PointTransaction) bool {
			return tx.PointsChange == -50
		})).Return(nil)
		m.eventBus.On("Publish", mock.Anything).Return()

		result, err := svc.SyncProfileCompletion(ctx, "alice", models.Profile{})

		require.NoError(t, err)
		assert.Equal(t, int64(-50), result.Delta)
		m.assertAll(t)
	})

	t.Run("recomputes delta after a version conflict", func(t *testing.T) {
		svc, m := createTestPointsService(5)

		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)

		m.userRepo.On("GetByUserID", ctx, "alice").Return(&models.User{UserID: "alice", Points: 0, Version: 0}, nil).Once()
		m.transactionRepo.On("SumBySource", ctx, "alice", models.PointSourceProfileCompletion).Return(int64(0), nil).Once()
		m.userRepo.On("UpdatePoints", ctx, "alice", int64(16), int64(0)).Return(ErrVersionConflict).Once()

		// A concurrent sync already wrote the full amount
		m.userRepo.On("GetByUserID", ctx, "alice").Return(&models.User{UserID: "alice", Points: 16, Version: 1}, nil).Once()
		m.transactionRepo.On("SumBySource", ctx, "alice", models.PointSourceProfileCompletion).Return(int64(16), nil).Once()

		result, err := svc.SyncProfileCompletion(ctx, "alice", profile)

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Delta)
		assert.Nil(t, result.Award)
		m.transactionRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit")
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, m := createTestPointsService(5)

		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(nil)
		m.uow.On("Rollback").Return(nil)
		m.userRepo.On("GetByUserID", ctx, "ghost").Return(nil, nil)

		result, err := svc.SyncProfileCompletion(ctx, "ghost", profile)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrUserNotFound)
		m.assertAll(t)
	})
}
