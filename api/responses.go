package api

import (
	"time"

	"bootcamp/models"
)

type userResponse struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Points      int64     `json:"points"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type transactionResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	PointsChange  int64          `json:"pointsChange"`
	AppliedChange int64          `json:"appliedChange"`
	Source        string         `json:"source"`
	Reason        string         `json:"reason"`
	SubmissionID  *string        `json:"submissionId,omitempty"`
	EventID       *string        `json:"eventId,omitempty"`
	AdminID       *string        `json:"adminId,omitempty"`
	Metadata      map[string]any `json:"metadata"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type awardResponse struct {
	PreviousPoints int64                `json:"previousPoints"`
	NewPoints      int64                `json:"newPoints"`
	Clamped        bool                 `json:"clamped"`
	Transaction    *transactionResponse `json:"transaction"`
}

type profileSyncResponse struct {
	CompletedFields int            `json:"completedFields"`
	TotalFields     int            `json:"totalFields"`
	ExpectedPoints  int64          `json:"expectedPoints"`
	ExistingPoints  int64          `json:"existingPoints"`
	Delta           int64          `json:"delta"`
	Award           *awardResponse `json:"award,omitempty"`
}

type breakdownResponse struct {
	UserID                  string                 `json:"userId"`
	TotalPoints             int64                  `json:"totalPoints"`
	ProfileCompletionPoints int64                  `json:"profileCompletionPoints"`
	SubmissionPoints        int64                  `json:"submissionPoints"`
	EventAttendancePoints   int64                  `json:"eventAttendancePoints"`
	AdminAdjustmentPoints   int64                  `json:"adminAdjustmentPoints"`
	BonusPoints             int64                  `json:"bonusPoints"`
	ClampedPoints           int64                  `json:"clampedPoints"`
	Transactions            []*transactionResponse `json:"transactions"`
}

func newUserResponse(u *models.User) *userResponse {
	return &userResponse{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Points:      u.Points,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func newUserResponses(users []*models.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

func newTransactionResponse(t *models.PointTransaction) *transactionResponse {
	if t == nil {
		return nil
	}
	return &transactionResponse{
		ID:            t.ID.String(),
		UserID:        t.UserID,
		PointsChange:  t.PointsChange,
		AppliedChange: t.AppliedChange,
		Source:        t.Source.String(),
		Reason:        t.Reason,
		SubmissionID:  t.SubmissionID,
		EventID:       t.EventID,
		AdminID:       t.AdminID,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
	}
}

func newTransactionResponses(transactions []*models.PointTransaction) []*transactionResponse {
	out := make([]*transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, newTransactionResponse(t))
	}
	return out
}

func newAwardResponse(r *models.AwardResult) *awardResponse {
	if r == nil {
		return nil
	}
	return &awardResponse{
		PreviousPoints: r.PreviousPoints,
		NewPoints:      r.NewPoints,
		Clamped:        r.Clamped(),
		Transaction:    newTransactionResponse(r.Transaction),
	}
}

func newProfileSyncResponse(r *models.ProfileSyncResult) *profileSyncResponse {
	return &profileSyncResponse{
		CompletedFields: r.CompletedFields,
		TotalFields:     models.ProfileFieldCount,
		ExpectedPoints:  r.ExpectedPoints,
		ExistingPoints:  r.ExistingPoints,
		Delta:           r.Delta,
		Award:           newAwardResponse(r.Award),
	}
}

func newBreakdownResponse(b *models.PointsBreakdown) *breakdownResponse {
	return &breakdownResponse{
		UserID:                  b.UserID,
		TotalPoints:             b.TotalPoints,
		ProfileCompletionPoints: b.ProfileCompletionPoints,
		SubmissionPoints:        b.SubmissionPoints,
		EventAttendancePoints:   b.EventAttendancePoints,
		AdminAdjustmentPoints:   b.AdminAdjustmentPoints,
		BonusPoints:             b.BonusPoints,
		ClampedPoints:           b.ClampedPoints,
		Transactions:            newTransactionResponses(b.Transactions),
	}
}
