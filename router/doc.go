/*
Package router defines the HTTP routes.

# Route Registration

NewRouter creates a configured http.ServeMux:

	mux := router.NewRouter(hub)

# Endpoints

	GET /health - liveness check, fixed OK payload
	GET /ws     - websocket upgrade into the event stream
	GET /       - version banner

There is no other HTTP API: polls, registration, answers, and results
all travel over the websocket events handled by the session package.
*/
package router
