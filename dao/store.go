package dao

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// txRetries is how many times a serialization failure is retried
// before the error is surfaced to the caller.
const txRetries = 3

// Store wraps the database handle and exposes the atomic transaction
// primitive every lifecycle operation runs inside. All reads within
// the body see a consistent snapshot and all writes commit atomically
// or not at all.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the raw handle for read-only paths.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// RunTransaction executes fn inside a database transaction, retrying
// on serialization conflict. The body may be re-executed and must be
// free of side effects outside the transaction.
func (s *Store) RunTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// isSerializationFailure reports whether err is a PostgreSQL
// serialization or deadlock error worth re-running the transaction for.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
