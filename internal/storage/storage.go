package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wKayaa/gemfounder/internal/config"
)

// DB wraps the GORM database connection
type DB struct {
	conn *gorm.DB
	log  *logrus.Logger
}

// New creates a new database connection with GORM
func New(cfg *config.Config, log *logrus.Logger) (*DB, error) {
	// Configure GORM logger
	gormLogger := logger.New(
		&gormLogAdapter{log: log},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	conn, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DatabaseMaxConns)
	sqlDB.SetMaxIdleConns(cfg.DatabaseMaxConns / 2)
	sqlDB.SetConnMaxIdleTime(cfg.DatabaseMaxIdleTime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Database connection established")

	return &DB{conn: conn, log: log}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs GORM auto-migration (for development only)
func (db *DB) AutoMigrate() error {
	return db.conn.AutoMigrate(
		&AppState{},
		&NotifiedToken{},
		&ScanRecord{},
	)
}

// GetState retrieves a state value by key
func (db *DB) GetState(ctx context.Context, key string) (string, error) {
	var state AppState
	result := db.conn.WithContext(ctx).Where("state_key = ?", key).First(&state)
	if result.Error == gorm.ErrRecordNotFound {
		return "", nil
	}
	if result.Error != nil {
		return "", result.Error
	}
	return state.StateValue, nil
}

// SetState sets a state value
func (db *DB) SetState(ctx context.Context, key, value string) error {
	now := time.Now().Unix()
	state := AppState{
		StateKey:   key,
		StateValue: value,
		UpdatedTS:  now,
	}
	result := db.conn.WithContext(ctx).Save(&state)
	return result.Error
}

// IsTokenNotified checks whether a token was already surfaced to the user
func (db *DB) IsTokenNotified(ctx context.Context, tokenKey string) (bool, error) {
	var count int64
	result := db.conn.WithContext(ctx).
		Model(&NotifiedToken{}).
		Where("token_key = ?", tokenKey).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// MarkNotified records a surfaced token so it is never alerted twice
func (db *DB) MarkNotified(ctx context.Context, token *NotifiedToken) error {
	result := db.conn.WithContext(ctx).Create(token)
	return result.Error
}

// AddScanRecord stores the statistics of one completed scan cycle
func (db *DB) AddScanRecord(ctx context.Context, record *ScanRecord) error {
	result := db.conn.WithContext(ctx).Create(record)
	return result.Error
}

// RecentNotifications retrieves the most recently surfaced tokens
func (db *DB) RecentNotifications(ctx context.Context, limit int) ([]NotifiedToken, error) {
	var tokens []NotifiedToken
	result := db.conn.WithContext(ctx).
		Order("notified_ts DESC").
		Limit(limit).
		Find(&tokens)
	return tokens, result.Error
}

// CleanupOldNotifications deletes notification records older than the
// retention window so long-dead tokens can be surfaced again if they return.
func (db *DB) CleanupOldNotifications(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	result := db.conn.WithContext(ctx).
		Where("notified_ts < ?", cutoff).
		Delete(&NotifiedToken{})
	return result.RowsAffected, result.Error
}

// Statistics aggregates stored history for the summary report
type Statistics struct {
	TotalNotified      int64
	NotifiedLast24H    int64
	TotalScans         int64
	TokensScannedTotal int64
}

// GetStatistics computes aggregate statistics across all stored history
func (db *DB) GetStatistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics

	if err := db.conn.WithContext(ctx).
		Model(&NotifiedToken{}).
		Count(&stats.TotalNotified).Error; err != nil {
		return nil, err
	}

	dayAgo := time.Now().Add(-24 * time.Hour).Unix()
	if err := db.conn.WithContext(ctx).
		Model(&NotifiedToken{}).
		Where("notified_ts >= ?", dayAgo).
		Count(&stats.NotifiedLast24H).Error; err != nil {
		return nil, err
	}

	if err := db.conn.WithContext(ctx).
		Model(&ScanRecord{}).
		Count(&stats.TotalScans).Error; err != nil {
		return nil, err
	}

	var scanned *int64
	if err := db.conn.WithContext(ctx).
		Model(&ScanRecord{}).
		Select("SUM(tokens_scanned)").
		Scan(&scanned).Error; err != nil {
		return nil, err
	}
	if scanned != nil {
		stats.TokensScannedTotal = *scanned
	}

	return &stats, nil
}

// gormLogAdapter adapts logrus to GORM's logger interface
type gormLogAdapter struct {
	log *logrus.Logger
}

func (l *gormLogAdapter) Printf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}
