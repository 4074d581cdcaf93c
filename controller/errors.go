package controller

import (
	"errors"
	"fmt"
)

// ErrPollNotActive is returned when an answer targets a completed poll.
var ErrPollNotActive = errors.New("poll is not active")

// ValidationError reports malformed input, rejected before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AdmissionDeniedError reports that poll creation is blocked by an
// unfinished prior poll. Remaining is the number of connected students
// who have not answered yet.
type AdmissionDeniedError struct {
	Remaining int
}

func (e *AdmissionDeniedError) Error() string {
	return fmt.Sprintf("waiting for %d students to answer", e.Remaining)
}
