package router

import (
	"net/http"

	"github.com/yarrakiran3/polling-system-backend/middleware"
	"github.com/yarrakiran3/polling-system-backend/transport"
)

type healthPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewRouter builds the HTTP surface: the liveness endpoint and the
// websocket upgrade route. All functional traffic flows through the
// websocket event stream.
func NewRouter(hub *transport.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, healthPayload{
			Status:  "OK",
			Message: "Polling system backend is running",
		})
	}))

	// Websocket entry point; logging happens inside the hub since the
	// request lives for the whole connection.
	mux.HandleFunc("GET /ws", hub.HandleWS)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("polling-system-backend v1"))
	})

	return mux
}
