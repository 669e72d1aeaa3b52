package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootcamp/models"
	"bootcamp/service"

	"gorm.io/gorm"
)

// UserRepository implements service.UserRepository on gorm
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUserID retrieves a user by id
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return row.toModel(), nil
}

// Create creates a new user at zero points
func (r *UserRepository) Create(ctx context.Context, userID string, displayName string) (*models.User, error) {
	row := userRow{
		UserID:      userID,
		DisplayName: displayName,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", service.ErrUserExists, userID)
		}
		return nil, fmt.Errorf("failed to create user %s: %w", userID, err)
	}

	return row.toModel(), nil
}

// UpdatePoints sets a user's points if nobody else wrote since expectedVersion was read
func (r *UserRepository) UpdatePoints(ctx context.Context, userID string, newPoints int64, expectedVersion int64) error {
	result := r.db.WithContext(ctx).
		Model(&userRow{}).
		Where("user_id = ? AND version = ?", userID, expectedVersion).
		Updates(map[string]any{
			"points":     newPoints,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update points for user %s: %w", userID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s at version %d", service.ErrVersionConflict, userID, expectedVersion)
	}

	return nil
}

// GetLeaderboard returns users ordered by points, highest first
func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	var rows []userRow
	err := r.db.WithContext(ctx).
		Order("points DESC").
		Order("user_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	users := make([]*models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toModel())
	}

	return users, nil
}
