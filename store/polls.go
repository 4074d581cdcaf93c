package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yarrakiran3/polling-system-backend/models"
)

// CreatePoll inserts a new poll in active status.
func (s *Store) CreatePoll(ctx context.Context, question string, options []string, timeLimit int) (models.Poll, error) {
	encoded, err := json.Marshal(options)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to encode options: %w", err)
	}

	poll := models.Poll{
		ID:        uuid.New().String(),
		Question:  question,
		Options:   options,
		TimeLimit: timeLimit,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO polls (id, question, options, time_limit, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poll.ID, poll.Question, string(encoded), poll.TimeLimit, poll.Status, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	return poll, nil
}

// GetPoll reads a poll by id. Returns ErrNotFound when the id is unknown.
func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, options, time_limit, status, created_at, completed_at
		FROM polls WHERE id = $1
	`, id)
	return scanPoll(row)
}

// GetActivePoll reads the single active poll. Returns ErrNotFound when
// no poll is active.
func (s *Store) GetActivePoll(ctx context.Context) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question, options, time_limit, status, created_at, completed_at
		FROM polls WHERE status = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, models.StatusActive)
	return scanPoll(row)
}

// CompletePoll flips a poll from active to completed and stamps the
// completion time. The UPDATE is guarded on status, so completing an
// already-completed poll reports completed=false without touching the
// row; the caller uses that to suppress a second completion broadcast.
func (s *Store) CompletePoll(ctx context.Context, id string) (models.Poll, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE polls SET status = $1, completed_at = $2
		WHERE id = $3 AND status = $4
	`, models.StatusCompleted, time.Now().UTC(), id, models.StatusActive)
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to complete poll: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to complete poll: %w", err)
	}

	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		return models.Poll{}, false, err
	}

	return poll, affected > 0, nil
}

// GetCompletedPolls returns completed polls, most recent first.
func (s *Store) GetCompletedPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, options, time_limit, status, created_at, completed_at
		FROM polls WHERE status = $1
		ORDER BY created_at DESC
	`, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		poll, err := scanPollRow(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row *sql.Row) (models.Poll, error) {
	poll, err := scanPollRow(row)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	return poll, err
}

func scanPollRow(row rowScanner) (models.Poll, error) {
	var poll models.Poll
	var encoded string
	if err := row.Scan(&poll.ID, &poll.Question, &encoded, &poll.TimeLimit,
		&poll.Status, &poll.CreatedAt, &poll.CompletedAt); err != nil {
		return models.Poll{}, err
	}
	if err := json.Unmarshal([]byte(encoded), &poll.Options); err != nil {
		return models.Poll{}, fmt.Errorf("failed to decode options: %w", err)
	}
	return poll, nil
}
