package models

import (
	"math"
	"time"
)

// User is the per-student balance record. Points is the cached total and is
// never negative.
type User struct {
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Points      int64     `db:"points"`
	Version     int64     `db:"version"` // Bumped on every balance write
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CalculateNewPoints returns the balance after applying change, clamped at
// zero and saturated at math.MaxInt64
func (u *User) CalculateNewPoints(change int64) int64 {
	if change > 0 && u.Points > math.MaxInt64-change {
		return math.MaxInt64
	}
	if change < 0 && u.Points < math.MinInt64-change {
		return 0
	}
	newPoints := u.Points + change
	if newPoints < 0 {
		return 0
	}
	return newPoints
}

// HasPoints checks if the user has a positive balance
func (u *User) HasPoints() bool {
	return u.Points > 0
}

// Name returns the display name, falling back to the user ID
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.UserID
}
