package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/yarrakiran3/polling-system-backend/db"
	"github.com/yarrakiran3/polling-system-backend/models"
	"github.com/yarrakiran3/polling-system-backend/store"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Every test gets its own file under t.TempDir, so tests can run in
// parallel without sharing state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "polling_test.db")
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore creates a store over a fresh test database.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// CreateTestPoll creates an active poll and returns it.
func CreateTestPoll(t *testing.T, st *store.Store, question string, options []string, timeLimit int) models.Poll {
	t.Helper()

	poll, err := st.CreatePoll(context.Background(), question, options, timeLimit)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CompleteTestPoll flips a poll to completed.
func CompleteTestPoll(t *testing.T, st *store.Store, pollID string) {
	t.Helper()

	if _, _, err := st.CompletePoll(context.Background(), pollID); err != nil {
		t.Fatalf("Failed to complete test poll: %v", err)
	}
}

// RegisterTestStudent registers a student bound to the given connection
// handle.
func RegisterTestStudent(t *testing.T, st *store.Store, name, connID string) models.Student {
	t.Helper()

	student, err := st.RegisterStudent(context.Background(), name, connID)
	if err != nil {
		t.Fatalf("Failed to register test student: %v", err)
	}
	return student
}

// RecordTestResponse records an answer for a (poll, student) pair.
func RecordTestResponse(t *testing.T, st *store.Store, pollID, studentID, answer string) models.Response {
	t.Helper()

	response, err := st.RecordResponse(context.Background(), pollID, studentID, answer)
	if err != nil {
		t.Fatalf("Failed to record test response: %v", err)
	}
	return response
}

// SentEvent is one delivery captured by FakeSender. ConnID is empty for
// broadcasts.
type SentEvent struct {
	ConnID  string
	Event   string
	Payload any
}

// FakeSender records outbound events in order. It satisfies
// transport.Sender and is safe for concurrent use, since countdown
// callbacks deliver from a timer goroutine.
type FakeSender struct {
	mu     sync.Mutex
	events []SentEvent
}

func (f *FakeSender) SendTo(connID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, SentEvent{ConnID: connID, Event: event, Payload: payload})
}

func (f *FakeSender) Broadcast(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, SentEvent{Event: event, Payload: payload})
}

// Events returns a copy of everything sent so far.
func (f *FakeSender) Events() []SentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]SentEvent, len(f.events))
	copy(out, f.events)
	return out
}

// Named returns all captured events with the given name.
func (f *FakeSender) Named(event string) []SentEvent {
	var out []SentEvent
	for _, e := range f.Events() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the capture buffer.
func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}
