package models

import "time"

// Poll status constants
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Event names received from clients
const (
	EventCreatePoll    = "teacher:create-poll"
	EventCanCreate     = "teacher:can-create"
	EventGetResults    = "teacher:get-results"
	EventGetHistory    = "teacher:get-history"
	EventRemoveStudent = "teacher:remove-student"
	EventRegister      = "student:register"
	EventSubmitAnswer  = "student:submit-answer"
	EventGetStudents   = "get-students"
	EventDisconnect    = "disconnect"
)

// Event names sent to clients
const (
	EventPollNew           = "poll:new"
	EventPollCreated       = "poll:created"
	EventPollTimer         = "poll:timer"
	EventPollUpdate        = "poll:update"
	EventPollCompleted     = "poll:completed"
	EventPollResults       = "poll:results"
	EventPollHistory       = "poll:history"
	EventPollError         = "poll:error"
	EventCanCreateResponse = "teacher:can-create-response"
	EventStudentRegistered = "student:registered"
	EventStudentRemoved    = "student:removed"
	EventAnswerSubmitted   = "answer:submitted"
	EventStudentsUpdated   = "students:updated"
)

// Inbound payload types

type CreatePollPayload struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimit"`
}

type GetResultsPayload struct {
	PollID string `json:"pollId"`
}

type RemoveStudentPayload struct {
	StudentID string `json:"studentId"`
}

type RegisterPayload struct {
	Name string `json:"name"`
}

type SubmitAnswerPayload struct {
	StudentID string `json:"studentId"`
	PollID    string `json:"pollId"`
	Answer    string `json:"answer"`
}

// Outbound payload types

type PollNewPayload struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimit"`
	Status    string   `json:"status"`
}

type PollCreatedPayload struct {
	Success bool `json:"success"`
	Poll    Poll `json:"poll"`
}

type PollTimerPayload struct {
	PollID    string `json:"pollId"`
	Remaining int    `json:"remaining"`
}

type CanCreatePayload struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}

type StudentRegisteredPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StudentRemovedPayload struct {
	Success bool `json:"success"`
}

type AnswerSubmittedPayload struct {
	Success bool `json:"success"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	TimeLimit   int        `json:"timeLimit"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Student struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	ConnID *string `json:"-"` // connection handle, nil when disconnected
}

type Response struct {
	ID          string    `json:"id"`
	PollID      string    `json:"pollId"`
	StudentID   string    `json:"studentId"`
	Answer      string    `json:"answer"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// PollResults is the aggregate view broadcast on updates and completion.
// Results carries every declared option, zero counts included.
type PollResults struct {
	ID             string         `json:"id"`
	Question       string         `json:"question"`
	Options        []string       `json:"options"`
	Status         string         `json:"status"`
	Results        map[string]int `json:"results"`
	TotalResponses int            `json:"totalResponses"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
}

// HTTP error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
