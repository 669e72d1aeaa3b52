package sqlite

import (
	"context"
	"fmt"

	"bootcamp/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointTransactionRepository implements service.PointTransactionRepository on gorm
type PointTransactionRepository struct {
	db *gorm.DB
}

// NewPointTransactionRepository creates a new point transaction repository
func NewPointTransactionRepository(db *gorm.DB) *PointTransactionRepository {
	return &PointTransactionRepository{db: db}
}

// Record appends a ledger entry
func (r *PointTransactionRepository) Record(ctx context.Context, transaction *models.PointTransaction) error {
	if !transaction.Source.IsValid() {
		return fmt.Errorf("failed to record point transaction: unknown source %q", transaction.Source)
	}

	row := pointTransactionRow{
		ID:            transaction.ID.String(),
		UserID:        transaction.UserID,
		PointsChange:  transaction.PointsChange,
		AppliedChange: transaction.AppliedChange,
		Source:        string(transaction.Source),
		Reason:        transaction.Reason,
		SubmissionID:  transaction.SubmissionID,
		EventID:       transaction.EventID,
		AdminID:       transaction.AdminID,
		Metadata:      transaction.Metadata,
		CreatedAt:     transaction.CreatedAt,
	}
	if row.Metadata == nil {
		row.Metadata = map[string]any{}
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record point transaction for user %s: %w", transaction.UserID, err)
	}

	return nil
}

// GetByUser returns a user's ledger entries newest first. A non-positive limit returns all.
func (r *PointTransactionRepository) GetByUser(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("seq DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []pointTransactionRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get point transactions for user %s: %w", userID, err)
	}

	transactions := make([]*models.PointTransaction, 0, len(rows))
	for i := range rows {
		transaction, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

// SumBySource returns the sum of requested changes for one source
func (r *PointTransactionRepository) SumBySource(ctx context.Context, userID string, source models.PointSource) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&pointTransactionRow{}).
		Where("user_id = ? AND source = ?", userID, string(source)).
		Select("COALESCE(SUM(points_change), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s points for user %s: %w", source, userID, err)
	}

	return total, nil
}

func (r *pointTransactionRow) toModel() (*models.PointTransaction, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse point transaction id %q: %w", r.ID, err)
	}

	return &models.PointTransaction{
		ID:            id,
		UserID:        r.UserID,
		PointsChange:  r.PointsChange,
		AppliedChange: r.AppliedChange,
		Source:        models.PointSource(r.Source),
		Reason:        r.Reason,
		SubmissionID:  r.SubmissionID,
		EventID:       r.EventID,
		AdminID:       r.AdminID,
		Metadata:      r.Metadata,
		CreatedAt:     r.CreatedAt,
	}, nil
}
