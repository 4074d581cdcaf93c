/*
Package store is the persistence layer for polls, students, and
responses.

# Store

All operations hang off a single Store created from an open database
connection:

	st := store.New(conn)

Every method takes a context and returns explicit errors. Two sentinel
errors matter to callers:

  - ErrNotFound: unknown poll or student id
  - ErrDuplicateResponse: second answer for the same (poll, student) pair

# Poll Rows

	CreatePoll, GetPoll, GetActivePoll, CompletePoll, GetCompletedPolls

CompletePoll is idempotent by construction: the UPDATE is guarded on
status = 'active' and reports whether this call performed the
transition. Timeout-driven and coverage-driven completion race through
here; whichever loses sees completed=false and stays quiet.

# Student Registry

	RegisterStudent, GetStudent, FindStudentByConn,
	GetConnectedStudents, ClearConn, DeleteStudent

Disconnecting clears the connection handle but keeps the record, so a
student with a cleared handle no longer counts toward connected totals
while their past responses remain attributable.

# Response Ledger

	HasResponded, RecordResponse, CountResponses, Aggregate

RecordResponse leans entirely on the UNIQUE (poll_id, student_id)
constraint: under concurrent duplicate attempts the database admits
exactly one insert and the rest surface ErrDuplicateResponse. No
in-process locking exists anywhere in the package.
*/
package store
