package service

import (
	"context"
	"fmt"

	"bootcamp/models"
)

// MaxProfilePoints is awarded for a fully completed profile
const MaxProfilePoints int64 = 50

// Metadata keys written by profile synchronisation
const (
	MetadataPreviousProfilePoints = "previousProfilePoints"
	MetadataNewProfilePoints      = "newProfilePoints"
	MetadataCompletedFields       = "completedFields"
	MetadataTotalFields           = "totalFields"
)

// ProfileCompletionPoints returns the points a profile is worth, floored
func ProfileCompletionPoints(profile models.Profile) int64 {
	return int64(profile.CompletedFields()) * MaxProfilePoints / models.ProfileFieldCount
}

// SyncProfileCompletion brings the user's profile_completion ledger total in
// line with the current profile. The existing total is read inside the award
// transaction so a retried or concurrent sync never double counts.
func (s *pointsService) SyncProfileCompletion(ctx context.Context, userID string, profile models.Profile) (*models.ProfileSyncResult, error) {
	completed := profile.CompletedFields()
	expected := ProfileCompletionPoints(profile)

	result := &models.ProfileSyncResult{
		CompletedFields: completed,
		ExpectedPoints:  expected,
	}

	award, err := s.award(ctx, userID, func(ctx context.Context, uow UnitOfWork, user *models.User) (*models.AwardRequest, error) {
		existing, err := uow.PointTransactionRepository().SumBySource(ctx, userID, models.PointSourceProfileCompletion)
		if err != nil {
			return nil, persistenceError("sum profile completion points", err)
		}

		result.ExistingPoints = existing
		result.Delta = expected - existing
		if result.Delta == 0 {
			return nil, nil
		}

		return &models.AwardRequest{
			UserID:       userID,
			PointsChange: result.Delta,
			Source:       models.PointSourceProfileCompletion,
			Reason:       fmt.Sprintf("Profile completion: %d/%d fields", completed, models.ProfileFieldCount),
			Metadata: map[string]any{
				MetadataPreviousProfilePoints: existing,
				MetadataNewProfilePoints:      expected,
				MetadataCompletedFields:       completed,
				MetadataTotalFields:           models.ProfileFieldCount,
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Award = award
	return result, nil
}
