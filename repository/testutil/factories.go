package testutil

import (
	"time"

	"bootcamp/models"

	"github.com/google/uuid"
)

// CreateTestPointTransaction creates a ledger entry with no clamping
func CreateTestPointTransaction(userID string, source models.PointSource, change int64) *models.PointTransaction {
	return &models.PointTransaction{
		ID:            uuid.New(),
		UserID:        userID,
		PointsChange:  change,
		AppliedChange: change,
		Source:        source,
		Reason:        "test " + string(source),
		Metadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// CreateTestPointTransactionAt creates a ledger entry with a fixed timestamp
func CreateTestPointTransactionAt(userID string, source models.PointSource, change int64, at time.Time) *models.PointTransaction {
	transaction := CreateTestPointTransaction(userID, source, change)
	transaction.CreatedAt = at
	return transaction
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
