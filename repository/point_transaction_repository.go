package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bootcamp/database"
	"bootcamp/models"
)

// PointTransactionRepository implements the PointTransactionRepository interface
type PointTransactionRepository struct {
	q queryable
}

// NewPointTransactionRepository creates a new point transaction repository
func NewPointTransactionRepository(db *database.DB) *PointTransactionRepository {
	return &PointTransactionRepository{q: db.Pool}
}

// newPointTransactionRepositoryWithTx creates a new point transaction repository with a transaction
func newPointTransactionRepositoryWithTx(tx queryable) *PointTransactionRepository {
	return &PointTransactionRepository{q: tx}
}

// Record appends a ledger entry
func (r *PointTransactionRepository) Record(ctx context.Context, transaction *models.PointTransaction) error {
	metadata := transaction.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction metadata: %w", err)
	}

	query := `
		INSERT INTO point_transactions
		(id, user_id, points_change, applied_change, source, reason, submission_id, event_id, admin_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.q.Exec(ctx, query,
		transaction.ID,
		transaction.UserID,
		transaction.PointsChange,
		transaction.AppliedChange,
		transaction.Source,
		transaction.Reason,
		transaction.SubmissionID,
		transaction.EventID,
		transaction.AdminID,
		metadataJSON,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record point transaction for user %s: %w", transaction.UserID, err)
	}

	return nil
}

// GetByUser returns a user's ledger entries newest first. A non-positive limit returns all.
func (r *PointTransactionRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error) {
	query := `
		SELECT id, user_id, points_change, applied_change, source, reason,
		       submission_id, event_id, admin_id, metadata, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get point transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	transactions := []*models.PointTransaction{}
	for rows.Next() {
		var transaction models.PointTransaction
		var metadataJSON []byte

		err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.PointsChange,
			&transaction.AppliedChange,
			&transaction.Source,
			&transaction.Reason,
			&transaction.SubmissionID,
			&transaction.EventID,
			&transaction.AdminID,
			&metadataJSON,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &transaction.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point transactions: %w", err)
	}

	return transactions, nil
}

// SumBySource returns the sum of requested changes for one source
func (r *PointTransactionRepository) SumBySource(ctx context.Context, userID string, source models.PointSource) (int64, error) {
	query := `
		SELECT COALESCE(SUM(points_change), 0)
		FROM point_transactions
		WHERE user_id = $1 AND source = $2
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, userID, source).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum %s points for user %s: %w", source, userID, err)
	}

	return total, nil
}
