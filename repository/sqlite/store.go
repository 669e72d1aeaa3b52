package sqlite

import (
	"fmt"
	"time"

	"bootcamp/models"

	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// userRow is the gorm mapping of the users table
type userRow struct {
	UserID      string `gorm:"primaryKey"`
	DisplayName string `gorm:"not null;default:''"`
	Points      int64  `gorm:"not null;default:0;check:points_non_negative,points >= 0;index:idx_users_points,priority:1,sort:desc"`
	Version     int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toModel() *models.User {
	return &models.User{
		UserID:      r.UserID,
		DisplayName: r.DisplayName,
		Points:      r.Points,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// pointTransactionRow is the gorm mapping of the point_transactions table.
// Seq is the rowid and breaks ties between entries with equal timestamps.
type pointTransactionRow struct {
	Seq           int64          `gorm:"primaryKey;autoIncrement"`
	ID            string         `gorm:"uniqueIndex;not null"`
	UserID        string         `gorm:"not null;index:idx_point_transactions_user_source,priority:1;index:idx_point_transactions_user_created,priority:1"`
	PointsChange  int64          `gorm:"not null"`
	AppliedChange int64          `gorm:"not null"`
	Source        string         `gorm:"not null;index:idx_point_transactions_user_source,priority:2"`
	Reason        string         `gorm:"not null;default:''"`
	SubmissionID  *string
	EventID       *string
	AdminID       *string
	Metadata      map[string]any `gorm:"serializer:json;type:text"`
	CreatedAt     time.Time      `gorm:"not null;index:idx_point_transactions_user_created,priority:2"`
}

func (pointTransactionRow) TableName() string { return "point_transactions" }

// Open opens (or creates) the sqlite database at dsn and migrates its schema.
// The pool is limited to one connection so writers serialize.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&userRow{}, &pointTransactionRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
