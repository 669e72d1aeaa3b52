package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Metadata keys written by the award path
const (
	MetadataPreviousPoints = "previousPoints"
	MetadataNewPoints      = "newPoints"
)

// PointTransaction is one immutable ledger entry.
//
// PointsChange is the delta the caller asked for. AppliedChange is what the
// balance actually moved by after clamping; the two differ only when a
// deduction would have taken the balance below zero.
type PointTransaction struct {
	ID            uuid.UUID      `db:"id"`
	UserID        string         `db:"user_id"`
	PointsChange  int64          `db:"points_change"`
	AppliedChange int64          `db:"applied_change"`
	Source        PointSource    `db:"source"`
	Reason        string         `db:"reason"`
	SubmissionID  *string        `db:"submission_id"`
	EventID       *string        `db:"event_id"`
	AdminID       *string        `db:"admin_id"`
	Metadata      map[string]any `db:"metadata"`
	CreatedAt     time.Time      `db:"created_at"`
}

// IsClamped returns true if clamping absorbed part of the requested change
func (t *PointTransaction) IsClamped() bool {
	return t.PointsChange != t.AppliedChange
}

// ClampedAmount returns how many points the zero floor absorbed, i.e. the
// applied change minus the requested one. It is positive for clamped
// deductions and saturates instead of overflowing.
func (t *PointTransaction) ClampedAmount() int64 {
	if t.PointsChange < 0 && t.AppliedChange > math.MaxInt64+t.PointsChange {
		return math.MaxInt64
	}
	if t.PointsChange > 0 && t.AppliedChange < math.MinInt64+t.PointsChange {
		return math.MinInt64
	}
	return t.AppliedChange - t.PointsChange
}

// IsAward returns true if the requested change is positive
func (t *PointTransaction) IsAward() bool {
	return t.PointsChange > 0
}

// IsDeduction returns true if the requested change is negative
func (t *PointTransaction) IsDeduction() bool {
	return t.PointsChange < 0
}
