package service

import (
	"context"

	"bootcamp/events"
	"bootcamp/models"
)

// UserRepository defines the interface for balance record access
type UserRepository interface {
	// GetByUserID retrieves a user, returning nil when none exists
	GetByUserID(ctx context.Context, userID string) (*models.User, error)

	// Create creates a new user with a zero balance
	Create(ctx context.Context, userID string, displayName string) (*models.User, error)

	// UpdatePoints sets the balance if the stored version still equals
	// expectedVersion, bumping the version. Returns ErrVersionConflict otherwise.
	UpdatePoints(ctx context.Context, userID string, newPoints int64, expectedVersion int64) error

	// GetLeaderboard returns users ordered by points descending
	GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error)
}

// PointTransactionRepository defines the interface for the append-only ledger
type PointTransactionRepository interface {
	// Record appends a ledger entry
	Record(ctx context.Context, transaction *models.PointTransaction) error

	// GetByUser returns a user's entries newest first; limit <= 0 returns all
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error)

	// SumBySource returns the sum of requested changes for one source
	SumBySource(ctx context.Context, userID string, source models.PointSource) (int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events.
	// It is a no-op after Commit.
	Rollback() error

	UserRepository() UserRepository
	PointTransactionRepository() PointTransactionRepository

	// EventBus returns the transactional event publisher
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// PointsService is the single mutation path for points
type PointsService interface {
	// AwardPoints applies a signed change, clamping the balance at zero
	AwardPoints(ctx context.Context, req models.AwardRequest) (*models.AwardResult, error)

	// AwardSubmission awards or deducts points for a reviewed submission
	AwardSubmission(ctx context.Context, userID, submissionID string, approved bool) (*models.AwardResult, error)

	// AwardEventAttendance awards points for attending an event
	AwardEventAttendance(ctx context.Context, userID, eventID, eventTitle string) (*models.AwardResult, error)

	// SyncProfileCompletion reconciles profile completion points with the ledger
	SyncProfileCompletion(ctx context.Context, userID string, profile models.Profile) (*models.ProfileSyncResult, error)
}

// AuditService provides read-only views over the ledger
type AuditService interface {
	// GetBreakdown returns the per-source composition of a user's points
	GetBreakdown(ctx context.Context, userID string) (*models.PointsBreakdown, error)

	// GetHistory returns a user's most recent ledger entries
	GetHistory(ctx context.Context, userID string, limit int) ([]*models.PointTransaction, error)
}

// UserService defines the interface for balance record operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates one at zero points
	GetOrCreateUser(ctx context.Context, userID string, displayName string) (*models.User, error)

	// GetUser retrieves a user, returning ErrUserNotFound when missing
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetLeaderboard returns the top users by points
	GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error)
}
