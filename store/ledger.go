package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yarrakiran3/polling-system-backend/models"
)

// HasResponded reports whether the student already answered the poll.
func (s *Store) HasResponded(ctx context.Context, pollID, studentID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM responses
			WHERE poll_id = $1 AND student_id = $2
		)
	`, pollID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query responses: %w", err)
	}
	return exists, nil
}

// RecordResponse records one answer for a (poll, student) pair. The
// UNIQUE constraint decides races: for any number of concurrent
// attempts exactly one insert lands and the rest fail with
// ErrDuplicateResponse, regardless of arrival order. The caller
// validates answer membership before invoking.
func (s *Store) RecordResponse(ctx context.Context, pollID, studentID, answer string) (models.Response, error) {
	response := models.Response{
		ID:          uuid.New().String(),
		PollID:      pollID,
		StudentID:   studentID,
		Answer:      answer,
		SubmittedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO responses (id, poll_id, student_id, answer, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, response.ID, response.PollID, response.StudentID, response.Answer, response.SubmittedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Response{}, ErrDuplicateResponse
		}
		return models.Response{}, fmt.Errorf("failed to insert response: %w", err)
	}

	return response, nil
}

// CountResponses returns the number of responses recorded for a poll.
func (s *Store) CountResponses(ctx context.Context, pollID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM responses WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// Aggregate tallies responses per option. Every declared option appears
// in the result, zero counts included, and the counts sum to total.
func (s *Store) Aggregate(ctx context.Context, pollID string, options []string) (map[string]int, int, error) {
	tally := make(map[string]int, len(options))
	for _, option := range options {
		tally[option] = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT answer, COUNT(*) FROM responses
		WHERE poll_id = $1
		GROUP BY answer
	`, pollID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate responses: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var answer string
		var count int
		if err := rows.Scan(&answer, &count); err != nil {
			return nil, 0, err
		}
		tally[answer] = count
		total += count
	}
	return tally, total, rows.Err()
}
