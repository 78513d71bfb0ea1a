package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a live record does not exist for the given
// user. Soft-deleted rows are invisible, so a second delete of the same
// drawing also reports ErrNotFound.
var ErrNotFound = errors.New("record not found")

// isUniqueViolation matches duplicate-key failures across postgres and
// sqlite. The favorite toggle leans on this instead of application-level
// locking.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
