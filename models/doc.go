/*
Package models defines domain records, event payloads, and shared constants.

# Domain Types

Internal data structures persisted by the store:

  - Poll: question, option set, time budget, lifecycle state
  - Student: registered participant with a nullable connection handle
  - Response: one answer per (poll, student) pair
  - PollResults: per-option tally plus total, broadcast on updates

# Event Names

Inbound events (client → server):

	teacher:create-poll, teacher:can-create, teacher:get-results,
	teacher:get-history, teacher:remove-student, student:register,
	student:submit-answer, get-students

Outbound events (server → client):

	poll:new, poll:created, poll:timer, poll:update, poll:completed,
	poll:results, poll:history, poll:error,
	teacher:can-create-response, student:registered, student:removed,
	answer:submitted, students:updated

# Payload Types

One struct per event payload, with camelCase JSON field names matching
the frontend contract (pollId, timeLimit, studentId, ...).

# Constants

Poll status values:

	StatusActive    = "active"
	StatusCompleted = "completed"
*/
package models
