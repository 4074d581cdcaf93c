/*
Package session routes client events between the transport and the poll
lifecycle controller.

# Coordinator

The coordinator consumes the hub's inbound queue in a single goroutine:

	coord := session.New(st, ctrl, countdown, hub)
	go coord.Run(hub.Inbound())

One handler runs at a time, so no locking is needed around controller
or ledger calls; the database's uniqueness constraint covers the only
genuine race (duplicate answers) and the countdown's completion path.

# Action Table

	teacher:create-poll    → create + broadcast poll:new, start countdown
	teacher:can-create     → reply teacher:can-create-response
	teacher:get-results    → reply poll:results
	teacher:get-history    → reply poll:history
	teacher:remove-student → delete record, broadcast students:updated
	student:register       → ack, broadcast roster, replay active poll
	student:submit-answer  → record, broadcast poll:update, maybe complete
	get-students           → reply students:updated
	disconnect (synthetic) → clear handle, broadcast roster, maybe complete

# Failure Semantics

Every failure is a private poll:error to the originating connection;
nothing about a failed action is ever broadcast. Store calls happen
before their corresponding broadcasts, so a failed mutation never
produces phantom events.

# Completion

Both completion triggers end here: the countdown's expiry callback and
the coverage check after each answer (and after each departure). Both
rely on the controller's idempotent CompletePoll and broadcast
poll:completed only when their call performed the transition, so the
event fires exactly once per poll.
*/
package session
