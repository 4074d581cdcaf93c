/*
Package testutil provides shared test fixtures.

SetupTestDB creates a per-test sqlite database with the full schema, so
the suite runs anywhere without a database server while exercising the
same SQL and the same UNIQUE constraints as production postgres.

Seed helpers (CreateTestPoll, RegisterTestStudent, RecordTestResponse,
CompleteTestPoll) fail the test on error and return the created
records.

FakeSender is a recording transport.Sender for coordinator tests: it
captures SendTo and Broadcast calls in order and is safe to use from
countdown timer goroutines.
*/
package testutil
