/*
Package controller owns the poll lifecycle.

# State Machine

A poll moves one way: active → completed. At most one poll is active
system-wide; the invariant lives in the database (one row with
status = 'active'), not in memory, so the controller is stateless and
restart-safe.

# Admission

CanCreate allows a new poll when no poll is active, or when the active
poll's response count covers every connected student (and at least one
is connected). CreatePoll validates input, applies the rule, and
force-completes a leftover active poll in the zero-students edge case.

# Completion

Two triggers race to complete a poll: the countdown reaching zero and
response coverage. Both funnel into CompletePoll, which is idempotent —
a status-guarded UPDATE — and reports whether this call performed the
transition. Callers suppress the completion broadcast when it did not.

EvaluateCompletion is the single authoritative coverage check: it
re-reads the connected count and response count fresh rather than
trusting any count the caller observed earlier.

# Countdown

Countdown keeps one cancellable timer per poll id, ticking once per
second:

	cd := controller.NewCountdown()
	cd.Start(poll.ID, poll.TimeLimit, onTick, onExpire)
	cd.Stop(poll.ID)

Stop must be called on coverage-driven completion; the expiry path
deregisters itself before firing so the two paths never double-fire.
*/
package controller
