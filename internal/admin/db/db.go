// Package db implements the gorm-backed repository of the admin service.
// A Repository obtained from WithTransaction is bound to that transaction,
// so callers pass it explicitly to everything that must commit together.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	e "github.com/testnest/admin/internal/admin/errors"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// ConnectTimeout bounds the retries while waiting for the database.
	ConnectTimeout time.Duration
}

// DSN renders cfg as a libpq connection string.
func (cfg *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// NewRepository connects to postgres, retrying with exponential backoff
// until cfg.ConnectTimeout elapses, and migrates the schema.
func NewRepository(ctx context.Context, cfg *Config, logger *zap.Logger) (*Repository, error) {
	var gdb *gorm.DB
	connect := func() error {
		var err error
		gdb, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			logger.Warn("database not ready, retrying", zap.Error(err))
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		return sqlDB.PingContext(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = cfg.ConnectTimeout
	if b.MaxElapsedTime == 0 {
		b.MaxElapsedTime = 30 * time.Second
	}
	if err := backoff.Retry(connect, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return Open(gdb)
}

// Open wraps an already opened gorm handle and migrates the schema.
func Open(gdb *gorm.DB) (*Repository, error) {
	if err := gdb.AutoMigrate(dbmodels.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: gdb}, nil
}

// WithTransaction runs fn inside a read-committed transaction. fn receives
// a Repository bound to the transaction; returning an error rolls back.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// translate maps gorm errors onto the storage sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, e.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, e.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// corrupt reports a stored row that no longer satisfies domain rules.
func corrupt(what string, id fmt.Stringer, err error) error {
	return e.NewFailure(e.Internal, e.NewError("CorruptRecord", fmt.Sprintf("%s %s is invalid: %v", what, id, err)))
}

// getRow loads one row by primary key.
func getRow[R any](ctx context.Context, db *gorm.DB, id fmt.Stringer, what string) (*R, error) {
	var row R
	if err := db.WithContext(ctx).First(&row, "id = ?", id.String()).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("get %s %s", what, id))
	}
	return &row, nil
}

// deleteRow removes one row by primary key.
func deleteRow[R any](ctx context.Context, db *gorm.DB, id fmt.Stringer, what string) error {
	result := db.WithContext(ctx).Delete(new(R), "id = ?", id.String())
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("delete %s %s", what, id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s %s: %w", what, id, e.ErrNotFound)
	}
	return nil
}

// saveRow updates every column of an existing row.
func saveRow[R any](ctx context.Context, db *gorm.DB, row *R, id fmt.Stringer, what string) error {
	result := db.WithContext(ctx).Model(row).Where("id = ?", id.String()).Select("*").Omit("created_at").Updates(row)
	if result.Error != nil {
		return translate(result.Error, fmt.Sprintf("update %s %s", what, id))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s %s: %w", what, id, e.ErrNotFound)
	}
	return nil
}

// exists reports whether any row matches the scoped query.
func exists[R any](ctx context.Context, db *gorm.DB, scope func(*gorm.DB) *gorm.DB) (bool, error) {
	var count int64
	err := scope(db.WithContext(ctx).Model(new(R))).Limit(1).Count(&count).Error
	return count > 0, err
}
