package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrConstraintViolation reports a uniqueness conflict, e.g. inserting a client whose id already exists.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrConnectivity reports any other driver, transport or protocol failure.
	ErrConnectivity = errors.New("store unavailable")
)

// Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// classify wraps err with op and the matching error kind.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := ErrConnectivity
	if IsUniqueViolation(err) {
		kind = ErrConstraintViolation
	}
	return fmt.Errorf("store: %s: %w: %w", op, kind, err)
}

// IsUniqueViolation reports whether err is a duplicate key error from any supported driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
