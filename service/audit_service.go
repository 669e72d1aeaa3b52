package service

import (
	"context"
	"fmt"

	"bootcamp/models"
)

type auditService struct {
	uowFactory UnitOfWorkFactory
}

// NewAuditService creates a new audit service
func NewAuditService(uowFactory UnitOfWorkFactory) AuditService {
	return &auditService{
		uowFactory: uowFactory,
	}
}

// GetBreakdown projects a user's ledger into per-source sums. Sums use the
// requested changes, so a clamped deduction shows up in its category and in
// ClampedPoints rather than being reconciled away.
func (s *auditService) GetBreakdown(ctx context.Context, userID string) (*models.PointsBreakdown, error) {
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

	transactions, err := uow.PointTransactionRepository().GetByUser(ctx, userID, 0)
	if err != nil {
		return nil, persistenceError("get point transactions", err)
	}

	return BuildBreakdown(user, transactions), nil
}

// GetHistory returns the user's most recent ledger entries, newest first
func (s *auditService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error) {
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

	transactions, err := uow.PointTransactionRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, persistenceError("get point transactions", err)
	}

	return transactions, nil
}

// BuildBreakdown folds transactions into a breakdown for user.
// Transactions are expected newest first and are kept in that order.
func BuildBreakdown(user *models.User, transactions []*models.PointTransaction) *models.PointsBreakdown {
	breakdown := &models.PointsBreakdown{
		UserID:       user.UserID,
		TotalPoints:  user.Points,
		Transactions: transactions,
	}
	if breakdown.Transactions == nil {
		breakdown.Transactions = []*models.PointTransaction{}
	}

	for _, t := range transactions {
		switch {
		case t.Source == models.PointSourceProfileCompletion:
			breakdown.ProfileCompletionPoints += t.PointsChange
		case t.Source.IsSubmission():
			breakdown.SubmissionPoints += t.PointsChange
		case t.Source == models.PointSourceEventAttendance:
			breakdown.EventAttendancePoints += t.PointsChange
		case t.Source == models.PointSourceAdminAdjustment:
			breakdown.AdminAdjustmentPoints += t.PointsChange
		case t.Source == models.PointSourceBonus:
			breakdown.BonusPoints += t.PointsChange
		}
		breakdown.ClampedPoints += t.ClampedAmount()
	}

	return breakdown
}
