package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarrakiran3/polling-system-backend/router"
	"github.com/yarrakiran3/polling-system-backend/transport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := transport.NewHub("*")
	server := httptest.NewServer(router.NewRouter(hub))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "OK", payload.Status)
	assert.NotEmpty(t, payload.Message)
}

func TestRootBanner(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "polling-system-backend")
}

func TestWebsocketRouteRejectsPlainGET(t *testing.T) {
	server := newTestServer(t)

	// Without the upgrade headers the handshake fails.
	resp, err := http.Get(server.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthRejectsPost(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/health", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
