package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yarrakiran3/polling-system-backend/models"
	"github.com/yarrakiran3/polling-system-backend/store"
)

// Controller drives the poll lifecycle: admission of new polls,
// recording answers, and the one-way active → completed transition.
// It keeps no state of its own; the single-active-poll invariant is
// enforced by querying the store, which makes restarts safe.
type Controller struct {
	store *store.Store
}

func New(st *store.Store) *Controller {
	return &Controller{store: st}
}

// CanCreate evaluates the admission rule: creation is allowed when no
// poll is active, or when every connected student has answered the
// active one (and at least one student is connected — a poll with an
// empty classroom only closes by timeout).
func (c *Controller) CanCreate(ctx context.Context) (models.CanCreatePayload, error) {
	active, err := c.store.GetActivePoll(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return models.CanCreatePayload{Allowed: true}, nil
	}
	if err != nil {
		return models.CanCreatePayload{}, err
	}

	connected, err := c.store.GetConnectedStudents(ctx)
	if err != nil {
		return models.CanCreatePayload{}, err
	}
	count, err := c.store.CountResponses(ctx, active.ID)
	if err != nil {
		return models.CanCreatePayload{}, err
	}

	if count >= len(connected) && len(connected) > 0 {
		return models.CanCreatePayload{Allowed: true}, nil
	}

	denied := &AdmissionDeniedError{Remaining: len(connected) - count}
	return models.CanCreatePayload{Allowed: false, Message: denied.Error()}, nil
}

// CreatePoll validates input, applies the admission rule, and inserts
// the new active poll. A prior poll that passed admission while still
// active (the zero-connected-students case) is force-completed first so
// at most one poll is ever active.
func (c *Controller) CreatePoll(ctx context.Context, question string, options []string, timeLimit int) (models.Poll, error) {
	if err := validatePollInput(question, options, timeLimit); err != nil {
		return models.Poll{}, err
	}

	canCreate, err := c.CanCreate(ctx)
	if err != nil {
		return models.Poll{}, err
	}
	if !canCreate.Allowed {
		connected, err := c.store.GetConnectedStudents(ctx)
		if err != nil {
			return models.Poll{}, err
		}
		active, err := c.store.GetActivePoll(ctx)
		if err != nil {
			return models.Poll{}, err
		}
		count, err := c.store.CountResponses(ctx, active.ID)
		if err != nil {
			return models.Poll{}, err
		}
		return models.Poll{}, &AdmissionDeniedError{Remaining: len(connected) - count}
	}

	previous, err := c.store.GetActivePoll(ctx)
	if err == nil {
		if _, _, err := c.store.CompletePoll(ctx, previous.ID); err != nil {
			return models.Poll{}, err
		}
		slog.Info("force-completed leftover poll", "poll_id", previous.ID)
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.Poll{}, err
	}

	poll, err := c.store.CreatePoll(ctx, question, options, timeLimit)
	if err != nil {
		return models.Poll{}, err
	}

	slog.Info("poll created", "poll_id", poll.ID, "time_limit", poll.TimeLimit)
	return poll, nil
}

func validatePollInput(question string, options []string, timeLimit int) error {
	if question == "" {
		return &ValidationError{Message: "question is required"}
	}
	if timeLimit <= 0 {
		return &ValidationError{Message: "time limit must be positive"}
	}
	if len(options) < 2 {
		return &ValidationError{Message: "at least 2 options required"}
	}
	seen := make(map[string]bool, len(options))
	for _, option := range options {
		if option == "" {
			return &ValidationError{Message: "options must not be empty"}
		}
		if seen[option] {
			return &ValidationError{Message: "options must be unique"}
		}
		seen[option] = true
	}
	return nil
}

// CompletePoll transitions a poll to completed. Completing an
// already-completed poll is a safe no-op, reported via the second
// return value; the timeout path and the coverage path race here and
// exactly one of them observes completed=true.
func (c *Controller) CompletePoll(ctx context.Context, pollID string) (models.Poll, bool, error) {
	poll, completed, err := c.store.CompletePoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, false, err
	}
	if completed {
		slog.Info("poll completed", "poll_id", pollID)
	}
	return poll, completed, nil
}

// SubmitAnswer validates an answer against the active poll and records
// it in the ledger. The ledger's uniqueness constraint settles
// concurrent duplicates; the early HasResponded check only produces a
// friendlier rejection for the common case.
func (c *Controller) SubmitAnswer(ctx context.Context, studentID, pollID, answer string) (models.Response, error) {
	answered, err := c.store.HasResponded(ctx, pollID, studentID)
	if err != nil {
		return models.Response{}, err
	}
	if answered {
		return models.Response{}, store.ErrDuplicateResponse
	}

	poll, err := c.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Response{}, err
	}
	if poll.Status != models.StatusActive {
		return models.Response{}, ErrPollNotActive
	}

	valid := false
	for _, option := range poll.Options {
		if option == answer {
			valid = true
			break
		}
	}
	if !valid {
		return models.Response{}, &ValidationError{Message: "invalid answer option"}
	}

	response, err := c.store.RecordResponse(ctx, pollID, studentID, answer)
	if err != nil {
		return models.Response{}, err
	}

	slog.Info("answer recorded", "poll_id", pollID, "student_id", studentID)
	return response, nil
}

// EvaluateCompletion re-reads the connected-student and response counts
// and completes the poll when coverage is reached. This is the single
// authoritative threshold check: callers never carry their own counts
// into the decision, so connect/disconnect churn between a submission
// and its evaluation cannot produce a stale denominator. The returned
// flag is true only for the call that performed the transition.
func (c *Controller) EvaluateCompletion(ctx context.Context, pollID string) (bool, models.PollResults, error) {
	poll, err := c.store.GetPoll(ctx, pollID)
	if err != nil {
		return false, models.PollResults{}, err
	}
	if poll.Status != models.StatusActive {
		return false, models.PollResults{}, nil
	}

	connected, err := c.store.GetConnectedStudents(ctx)
	if err != nil {
		return false, models.PollResults{}, err
	}
	count, err := c.store.CountResponses(ctx, pollID)
	if err != nil {
		return false, models.PollResults{}, err
	}

	if len(connected) == 0 || count < len(connected) {
		return false, models.PollResults{}, nil
	}

	_, completed, err := c.CompletePoll(ctx, pollID)
	if err != nil {
		return false, models.PollResults{}, err
	}
	if !completed {
		return false, models.PollResults{}, nil
	}

	results, err := c.GetResults(ctx, pollID)
	if err != nil {
		return false, models.PollResults{}, err
	}
	return true, results, nil
}

// GetResults returns poll metadata with the per-option tally and total.
func (c *Controller) GetResults(ctx context.Context, pollID string) (models.PollResults, error) {
	poll, err := c.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.PollResults{}, err
	}
	return c.resultsFor(ctx, poll)
}

// GetHistory returns results for completed polls, most recent first.
func (c *Controller) GetHistory(ctx context.Context) ([]models.PollResults, error) {
	polls, err := c.store.GetCompletedPolls(ctx)
	if err != nil {
		return nil, err
	}

	history := []models.PollResults{}
	for _, poll := range polls {
		results, err := c.resultsFor(ctx, poll)
		if err != nil {
			return nil, err
		}
		history = append(history, results)
	}
	return history, nil
}

// GetActivePoll returns the poll currently accepting responses.
func (c *Controller) GetActivePoll(ctx context.Context) (models.Poll, error) {
	return c.store.GetActivePoll(ctx)
}

func (c *Controller) resultsFor(ctx context.Context, poll models.Poll) (models.PollResults, error) {
	tally, total, err := c.store.Aggregate(ctx, poll.ID, poll.Options)
	if err != nil {
		return models.PollResults{}, err
	}
	return models.PollResults{
		ID:             poll.ID,
		Question:       poll.Question,
		Options:        poll.Options,
		Status:         poll.Status,
		Results:        tally,
		TotalResponses: total,
		CreatedAt:      poll.CreatedAt,
		CompletedAt:    poll.CompletedAt,
	}, nil
}
