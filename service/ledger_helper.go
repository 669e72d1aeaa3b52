package service

import (
	"context"
	"fmt"

	"bootcamp/events"
	"bootcamp/models"
)

// RecordPointTransaction appends a ledger entry and queues the matching event.
// This is the single entry point for writing to the ledger.
func RecordPointTransaction(ctx context.Context, uow UnitOfWork, transaction *models.PointTransaction, oldPoints, newPoints int64) error {
	if err := uow.PointTransactionRepository().Record(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record point transaction: %w", err)
	}

	// Flushed only after the transaction commits
	uow.EventBus().Publish(events.PointsAwardedEvent{
		UserID:          transaction.UserID,
		TransactionID:   transaction.ID,
		Source:          transaction.Source,
		Reason:          transaction.Reason,
		RequestedChange: transaction.PointsChange,
		AppliedChange:   transaction.AppliedChange,
		OldPoints:       oldPoints,
		NewPoints:       newPoints,
	})

	return nil
}
