package repository

import (
	"context"
	"errors"
	"fmt"

	"bootcamp/database"
	"bootcamp/models"
	"bootcamp/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the postgres SQLSTATE for a duplicate key
const uniqueViolation = "23505"

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `user_id, display_name, points, version, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.DisplayName,
		&user.Points,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUserID retrieves a user by id
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return user, nil
}

// Create creates a new user at zero points
func (r *UserRepository) Create(ctx context.Context, userID string, displayName string) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, display_name)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, displayName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", service.ErrUserExists, userID)
		}
		return nil, fmt.Errorf("failed to create user %s: %w", userID, err)
	}

	return user, nil
}

// UpdatePoints sets a user's points if nobody else wrote since expectedVersion was read
func (r *UserRepository) UpdatePoints(ctx context.Context, userID string, newPoints int64, expectedVersion int64) error {
	query := `
		UPDATE users
		SET points = $2, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND version = $3
	`

	result, err := r.q.Exec(ctx, query, userID, newPoints, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update points for user %s: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s at version %d", service.ErrVersionConflict, userID, expectedVersion)
	}

	return nil
}

// GetLeaderboard returns users ordered by points, highest first
func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
