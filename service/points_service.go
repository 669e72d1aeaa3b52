package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootcamp/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Fixed award amounts for the collaborator-facing helpers
const (
	SubmissionApprovedPoints int64 = 10
	SubmissionRejectedPoints int64 = -5
	EventAttendancePoints    int64 = 5
)

// DefaultMaxAwardRetries is used when a non-positive retry count is configured
const DefaultMaxAwardRetries = 5

// awardBuilder produces the award to apply against the freshly read user.
// It runs inside the award transaction and is re-run on every retry.
// Returning a nil request skips the write.
type awardBuilder func(ctx context.Context, uow UnitOfWork, user *models.User) (*models.AwardRequest, error)

type pointsService struct {
	uowFactory UnitOfWorkFactory
	maxRetries int
	now        func() time.Time
}

// NewPointsService creates a new points service
func NewPointsService(uowFactory UnitOfWorkFactory, maxRetries int) PointsService {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxAwardRetries
	}
	return &pointsService{
		uowFactory: uowFactory,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// AwardPoints applies a signed change to a user's balance and records it in the ledger
func (s *pointsService) AwardPoints(ctx context.Context, req models.AwardRequest) (*models.AwardResult, error) {
	if !req.Source.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, req.Source)
	}

	return s.award(ctx, req.UserID, func(ctx context.Context, uow UnitOfWork, user *models.User) (*models.AwardRequest, error) {
		return &req, nil
	})
}

// AwardSubmission awards +10 for an approved submission or -5 for a rejected one
func (s *pointsService) AwardSubmission(ctx context.Context, userID, submissionID string, approved bool) (*models.AwardResult, error) {
	req := models.AwardRequest{
		UserID:       userID,
		PointsChange: SubmissionRejectedPoints,
		Source:       models.PointSourceSubmissionRejected,
		Reason:       fmt.Sprintf("Submission %s rejected", submissionID),
		SubmissionID: &submissionID,
	}
	if approved {
		req.PointsChange = SubmissionApprovedPoints
		req.Source = models.PointSourceSubmissionApproved
		req.Reason = fmt.Sprintf("Submission %s approved", submissionID)
	}

	return s.AwardPoints(ctx, req)
}

// AwardEventAttendance awards +5 for attending an event. Repeated calls award repeatedly.
func (s *pointsService) AwardEventAttendance(ctx context.Context, userID, eventID, eventTitle string) (*models.AwardResult, error) {
	return s.AwardPoints(ctx, models.AwardRequest{
		UserID:       userID,
		PointsChange: EventAttendancePoints,
		Source:       models.PointSourceEventAttendance,
		Reason:       fmt.Sprintf("Attended event: %s", eventTitle),
		EventID:      &eventID,
	})
}

// award runs build against the current user state and applies the result,
// retrying from a fresh read whenever the balance version moved underneath it
func (s *pointsService) award(ctx context.Context, userID string, build awardBuilder) (*models.AwardResult, error) {
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		result, err := s.tryAward(ctx, userID, build)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.WithFields(log.Fields{
			"user_id": userID,
			"attempt": attempt,
		}).Debug("Version conflict on award, retrying")
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"attempts": s.maxRetries,
	}).Warn("Award retries exhausted")

	return nil, fmt.Errorf("%w: user %s after %d attempts", ErrConcurrentUpdate, userID, s.maxRetries)
}

func (s *pointsService) tryAward(ctx context.Context, userID string, build awardBuilder) (*models.AwardResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, persistenceError("begin transaction", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceError("get user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	req, err := build(ctx, uow, user)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}
	if !req.Source.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, req.Source)
	}

	previousPoints := user.Points
	newPoints := user.CalculateNewPoints(req.PointsChange)

	if err := uow.UserRepository().UpdatePoints(ctx, userID, newPoints, user.Version); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, err
		}
		return nil, persistenceError("update points", err)
	}

	metadata := make(map[string]any, len(req.Metadata)+2)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata[models.MetadataPreviousPoints] = previousPoints
	metadata[models.MetadataNewPoints] = newPoints

	transaction := &models.PointTransaction{
		ID:            uuid.New(),
		UserID:        userID,
		PointsChange:  req.PointsChange,
		AppliedChange: newPoints - previousPoints,
		Source:        req.Source,
		Reason:        req.Reason,
		SubmissionID:  req.SubmissionID,
		EventID:       req.EventID,
		AdminID:       req.AdminID,
		Metadata:      metadata,
		CreatedAt:     s.now().UTC(),
	}

	if err := RecordPointTransaction(ctx, uow, transaction, previousPoints, newPoints); err != nil {
		return nil, persistenceError("write ledger entry", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, persistenceError("commit transaction", err)
	}

	log.WithFields(log.Fields{
		"user_id":        userID,
		"source":         req.Source,
		"points_change":  req.PointsChange,
		"applied_change": transaction.AppliedChange,
		"new_points":     newPoints,
	}).Info("Points awarded")

	return &models.AwardResult{
		PreviousPoints: previousPoints,
		NewPoints:      newPoints,
		Transaction:    transaction,
	}, nil
}
