// Package sql is a GORM-backed key-value store. SQLite (pure Go driver) is
// used for file paths and Postgres for postgres:// URLs.
package sql

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mcoot/leelawheel/internal/storage"
)

// entry is one row of the key-value table
type entry struct {
	Key       string `gorm:"column:kv_key;primaryKey;size:191"`
	Value     string `gorm:"column:kv_value;type:text;not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "leela_kv"
}

// Storage is a SQL implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Open connects to dsn and migrates the schema
func Open(dsn string) (*Storage, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if db.Dialector.Name() == "sqlite" {
		db.Exec("PRAGMA journal_mode=WAL;")
		db.Exec("PRAGMA busy_timeout=5000;")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return NewWithDB(db)
}

// NewWithDB wraps an existing connection and migrates the schema
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Validate reports an unusable dsn without connecting
func Validate(dsn string) error {
	_, err := dialectorFor(dsn)
	return err
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn), nil
	}

	// Fail early if the parent directory does not exist
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if dir := filepath.Dir(path); dir != "." && !strings.Contains(path, ":memory:") {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}
	return sqlite.Open(dsn), nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

// Set upserts the row for key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(&e).Error
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
