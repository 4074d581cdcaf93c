package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/yarrakiran3/polling-system-backend/controller"
	"github.com/yarrakiran3/polling-system-backend/models"
	"github.com/yarrakiran3/polling-system-backend/store"
	"github.com/yarrakiran3/polling-system-backend/transport"
)

// defaultTimeLimit is applied when a create-poll event omits the time
// budget, matching the frontend contract.
const defaultTimeLimit = 60

// Coordinator routes inbound client events to the controller and store
// and fans the outcomes back out. It holds no poll state; it is a
// dispatcher. Failures are always sent privately to the originating
// connection, never broadcast.
type Coordinator struct {
	store      *store.Store
	controller *controller.Controller
	countdown  *controller.Countdown
	sender     transport.Sender
}

func New(st *store.Store, ctrl *controller.Controller, cd *controller.Countdown, sender transport.Sender) *Coordinator {
	return &Coordinator{
		store:      st,
		controller: ctrl,
		countdown:  cd,
		sender:     sender,
	}
}

// Run drains the inbound queue until it closes. Handlers execute one at
// a time, so controller and ledger calls need no locking beyond the
// store's own constraints.
func (c *Coordinator) Run(messages <-chan transport.Message) {
	for msg := range messages {
		c.Dispatch(context.Background(), msg)
	}
}

// Dispatch handles a single inbound event.
func (c *Coordinator) Dispatch(ctx context.Context, msg transport.Message) {
	switch msg.Event {
	case models.EventCreatePoll:
		c.handleCreatePoll(ctx, msg)
	case models.EventCanCreate:
		c.handleCanCreate(ctx, msg)
	case models.EventGetResults:
		c.handleGetResults(ctx, msg)
	case models.EventGetHistory:
		c.handleGetHistory(ctx, msg)
	case models.EventRemoveStudent:
		c.handleRemoveStudent(ctx, msg)
	case models.EventRegister:
		c.handleRegister(ctx, msg)
	case models.EventSubmitAnswer:
		c.handleSubmitAnswer(ctx, msg)
	case models.EventGetStudents:
		c.handleGetStudents(ctx, msg)
	case models.EventDisconnect:
		c.handleDisconnect(ctx, msg)
	default:
		slog.Warn("unknown event", "event", msg.Event, "conn_id", msg.ConnID)
	}
}

func (c *Coordinator) handleCreatePoll(ctx context.Context, msg transport.Message) {
	var payload models.CreatePollPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.sendError(msg.ConnID, "invalid payload")
		return
	}
	if payload.TimeLimit == 0 {
		payload.TimeLimit = defaultTimeLimit
	}

	poll, err := c.controller.CreatePoll(ctx, payload.Question, payload.Options, payload.TimeLimit)
	if err != nil {
		c.fail(msg.ConnID, "create poll", err)
		return
	}

	c.sender.Broadcast(models.EventPollNew, models.PollNewPayload{
		ID:        poll.ID,
		Question:  poll.Question,
		Options:   poll.Options,
		TimeLimit: poll.TimeLimit,
		Status:    poll.Status,
	})

	c.countdown.Start(poll.ID, poll.TimeLimit, c.onCountdownTick, c.onCountdownExpired)

	c.sender.SendTo(msg.ConnID, models.EventPollCreated, models.PollCreatedPayload{
		Success: true,
		Poll:    poll,
	})
}

func (c *Coordinator) onCountdownTick(pollID string, remaining int) {
	c.sender.Broadcast(models.EventPollTimer, models.PollTimerPayload{
		PollID:    pollID,
		Remaining: remaining,
	})
}

// onCountdownExpired is the timeout completion path. It races the
// coverage path in handleSubmitAnswer; CompletePoll reports which call
// won, and only the winner broadcasts.
func (c *Coordinator) onCountdownExpired(pollID string) {
	ctx := context.Background()

	_, completed, err := c.controller.CompletePoll(ctx, pollID)
	if err != nil {
		slog.Error("failed to complete poll on timeout", "poll_id", pollID, "error", err)
		return
	}
	if !completed {
		return
	}

	results, err := c.controller.GetResults(ctx, pollID)
	if err != nil {
		slog.Error("failed to load results after timeout", "poll_id", pollID, "error", err)
		return
	}
	c.sender.Broadcast(models.EventPollCompleted, results)
}

func (c *Coordinator) handleCanCreate(ctx context.Context, msg transport.Message) {
	canCreate, err := c.controller.CanCreate(ctx)
	if err != nil {
		c.fail(msg.ConnID, "can-create query", err)
		return
	}
	c.sender.SendTo(msg.ConnID, models.EventCanCreateResponse, canCreate)
}

func (c *Coordinator) handleGetResults(ctx context.Context, msg transport.Message) {
	var payload models.GetResultsPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.sendError(msg.ConnID, "invalid payload")
		return
	}

	results, err := c.controller.GetResults(ctx, payload.PollID)
	if err != nil {
		c.fail(msg.ConnID, "results query", err)
		return
	}
	c.sender.SendTo(msg.ConnID, models.EventPollResults, results)
}

func (c *Coordinator) handleGetHistory(ctx context.Context, msg transport.Message) {
	history, err := c.controller.GetHistory(ctx)
	if err != nil {
		c.fail(msg.ConnID, "history query", err)
		return
	}
	c.sender.SendTo(msg.ConnID, models.EventPollHistory, history)
}

func (c *Coordinator) handleRemoveStudent(ctx context.Context, msg transport.Message) {
	var payload models.RemoveStudentPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.sendError(msg.ConnID, "invalid payload")
		return
	}

	if err := c.store.DeleteStudent(ctx, payload.StudentID); err != nil {
		c.fail(msg.ConnID, "remove student", err)
		return
	}
	slog.Info("student removed", "student_id", payload.StudentID)

	c.broadcastRoster(ctx)
	c.sender.SendTo(msg.ConnID, models.EventStudentRemoved, models.StudentRemovedPayload{Success: true})

	// Removing a connected student shrinks the completion denominator.
	c.reevaluateActivePoll(ctx)
}

func (c *Coordinator) handleRegister(ctx context.Context, msg transport.Message) {
	var payload models.RegisterPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.sendError(msg.ConnID, "invalid payload")
		return
	}
	if payload.Name == "" {
		c.sendError(msg.ConnID, "name is required")
		return
	}

	student, err := c.store.RegisterStudent(ctx, payload.Name, msg.ConnID)
	if err != nil {
		c.fail(msg.ConnID, "register student", err)
		return
	}
	slog.Info("student registered", "student_id", student.ID, "name", student.Name)

	c.sender.SendTo(msg.ConnID, models.EventStudentRegistered, models.StudentRegisteredPayload{
		ID:   student.ID,
		Name: student.Name,
	})
	c.broadcastRoster(ctx)

	// A late joiner gets the running poll privately.
	active, err := c.controller.GetActivePoll(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to load active poll", "error", err)
		}
		return
	}
	c.sender.SendTo(msg.ConnID, models.EventPollNew, models.PollNewPayload{
		ID:        active.ID,
		Question:  active.Question,
		Options:   active.Options,
		TimeLimit: active.TimeLimit,
		Status:    active.Status,
	})
}

func (c *Coordinator) handleSubmitAnswer(ctx context.Context, msg transport.Message) {
	var payload models.SubmitAnswerPayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		c.sendError(msg.ConnID, "invalid payload")
		return
	}

	if _, err := c.controller.SubmitAnswer(ctx, payload.StudentID, payload.PollID, payload.Answer); err != nil {
		c.fail(msg.ConnID, "submit answer", err)
		return
	}

	c.sender.SendTo(msg.ConnID, models.EventAnswerSubmitted, models.AnswerSubmittedPayload{Success: true})

	results, err := c.controller.GetResults(ctx, payload.PollID)
	if err != nil {
		slog.Error("failed to load results after answer", "poll_id", payload.PollID, "error", err)
		return
	}
	c.sender.Broadcast(models.EventPollUpdate, results)

	// Coverage completion path. The controller re-reads the connected
	// count; we never reuse the counts behind the update we just sent.
	completed, finalResults, err := c.controller.EvaluateCompletion(ctx, payload.PollID)
	if err != nil {
		slog.Error("failed to evaluate completion", "poll_id", payload.PollID, "error", err)
		return
	}
	if completed {
		c.countdown.Stop(payload.PollID)
		c.sender.Broadcast(models.EventPollCompleted, finalResults)
	}
}

func (c *Coordinator) handleGetStudents(ctx context.Context, msg transport.Message) {
	students, err := c.store.GetConnectedStudents(ctx)
	if err != nil {
		c.fail(msg.ConnID, "students query", err)
		return
	}
	c.sender.SendTo(msg.ConnID, models.EventStudentsUpdated, students)
}

func (c *Coordinator) handleDisconnect(ctx context.Context, msg transport.Message) {
	if err := c.store.ClearConn(ctx, msg.ConnID); err != nil {
		slog.Error("failed to clear connection", "conn_id", msg.ConnID, "error", err)
		return
	}

	c.broadcastRoster(ctx)

	// A departure shrinks the denominator: if everyone still connected
	// has already answered, the poll completes now instead of waiting
	// out the clock.
	c.reevaluateActivePoll(ctx)
}

func (c *Coordinator) reevaluateActivePoll(ctx context.Context) {
	active, err := c.controller.GetActivePoll(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to load active poll", "error", err)
		}
		return
	}

	completed, results, err := c.controller.EvaluateCompletion(ctx, active.ID)
	if err != nil {
		slog.Error("failed to evaluate completion", "poll_id", active.ID, "error", err)
		return
	}
	if completed {
		c.countdown.Stop(active.ID)
		c.sender.Broadcast(models.EventPollCompleted, results)
	}
}

func (c *Coordinator) broadcastRoster(ctx context.Context) {
	students, err := c.store.GetConnectedStudents(ctx)
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		return
	}
	c.sender.Broadcast(models.EventStudentsUpdated, students)
}

// fail logs the error and notifies the originator privately.
func (c *Coordinator) fail(connID, action string, err error) {
	slog.Warn("action failed", "action", action, "conn_id", connID, "error", err)
	c.sendError(connID, errorMessage(err))
}

func (c *Coordinator) sendError(connID, message string) {
	c.sender.SendTo(connID, models.EventPollError, models.ErrorPayload{Message: message})
}

// errorMessage maps internal errors to user-facing text. Store failures
// surface as a generic message; details stay in the log.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrDuplicateResponse):
		return "You have already answered this poll"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.Is(err, controller.ErrPollNotActive):
		return "Poll is not active"
	}

	var validation *controller.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var denied *controller.AdmissionDeniedError
	if errors.As(err, &denied) {
		return denied.Error()
	}

	return "internal server error"
}
