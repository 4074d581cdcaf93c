package store

import (
	"database/sql"
	"errors"
	"strings"
)

// ErrNotFound is returned when a poll or student id is unknown.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateResponse is returned when a second response is recorded
// for the same (poll, student) pair. The first response is kept.
var ErrDuplicateResponse = errors.New("response already recorded")

// Store is the durable-store collaborator. All mutations go through the
// database; the UNIQUE constraint on responses(poll_id, student_id) is
// the only mutual-exclusion primitive the system relies on.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
