package models

// AwardRequest describes a single change to a user's points
type AwardRequest struct {
	UserID       string
	PointsChange int64
	Source       PointSource
	Reason       string
	SubmissionID *string
	EventID      *string
	AdminID      *string
	Metadata     map[string]any
}

// AwardResult is the outcome of a committed award (returned to the caller)
type AwardResult struct {
	PreviousPoints int64
	NewPoints      int64
	Transaction    *PointTransaction
}

// Clamped returns true if the balance absorbed part of a deduction
func (r *AwardResult) Clamped() bool {
	return r.Transaction != nil && r.Transaction.IsClamped()
}

// ProfileSyncResult is the outcome of a profile-completion reconciliation
type ProfileSyncResult struct {
	CompletedFields int
	ExpectedPoints  int64
	ExistingPoints  int64
	Delta           int64
	Award           *AwardResult // Nil when the ledger already matched
}
