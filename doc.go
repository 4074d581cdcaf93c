/*
Package main provides the entry point for the classroom polling backend.

The server runs a live polling session: a teacher publishes a question
with a fixed option set and a time budget, connected students each
submit one answer, results aggregate in real time, and the poll closes
when everyone has answered or the clock runs out, whichever comes
first.

# Starting the Server

Configuration comes from the environment (a .env file is loaded when
present):

	DATABASE_URL=postgres://... go run .

Required settings:

  - DATABASE_URL: connection string

Optional settings:

  - PORT: server port (default: 5000)
  - DATABASE_TYPE: postgres or sqlite (default: postgres)
  - FRONTEND_URL: allowed CORS/websocket origin (default: http://localhost:3000)

# Architecture

Clients connect over a websocket and exchange JSON event envelopes; the
only HTTP endpoints are /health and the upgrade route.

  - transport: websocket hub, connection registry, event framing
  - session: event dispatch, broadcasts, private error replies
  - controller: poll lifecycle, admission rule, countdown timers
  - store: polls, students, and the response ledger over database/sql
  - db: schema creation for both supported dialects
  - config, models, middleware, router: supporting plumbing

See package documentation for each component.
*/
package main
