package models

// PointsBreakdown is the audit view of a user's points.
//
// TotalPoints comes from the cached balance. The category sums are unclamped
// sums of PointsChange, so whenever clamping has happened they fall short of
// TotalPoints by ClampedPoints: LedgerSum()+ClampedPoints == TotalPoints.
type PointsBreakdown struct {
	UserID                  string              `json:"userId"`
	TotalPoints             int64               `json:"totalPoints"`
	ProfileCompletionPoints int64               `json:"profileCompletionPoints"`
	SubmissionPoints        int64               `json:"submissionPoints"`
	EventAttendancePoints   int64               `json:"eventAttendancePoints"`
	AdminAdjustmentPoints   int64               `json:"adminAdjustmentPoints"`
	BonusPoints             int64               `json:"bonusPoints"`
	ClampedPoints           int64               `json:"clampedPoints"`
	Transactions            []*PointTransaction `json:"transactions"`
}

// LedgerSum returns the sum of every category
func (b *PointsBreakdown) LedgerSum() int64 {
	return b.ProfileCompletionPoints +
		b.SubmissionPoints +
		b.EventAttendancePoints +
		b.AdminAdjustmentPoints +
		b.BonusPoints
}
