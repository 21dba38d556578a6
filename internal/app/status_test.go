package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeptcoder014/devstrap/internal/supervise"
)

func newTestApp() *App {
	return &App{
		logger: newLogger("error", "text", io.Discard),
		status: newStatusState(),
	}
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	rec := httptest.NewRecorder()

	a.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "OK")
}

func TestStatusHandler_InitialState(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	rec := httptest.NewRecorder()

	a.statusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "bootstrapping", body["state"])
	require.EqualValues(t, 0, body["restarts"])
}

func TestStatusHandler_TracksTransitions(t *testing.T) {
	t.Parallel()

	a := newTestApp()
	a.status.set(string(supervise.StateRunning), 4242)

	rec := httptest.NewRecorder()
	a.statusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "running", body["state"])
	require.EqualValues(t, 4242, body["pid"])

	// A restart transition bumps the counter.
	a.status.set(string(supervise.StateRestarting), 0)
	a.status.set(string(supervise.StateRunning), 4243)

	rec = httptest.NewRecorder()
	a.statusHandler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "running", body["state"])
	require.EqualValues(t, 1, body["restarts"])
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	valid := Config{LogFormat: "text", LogLevel: "info"}
	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	require.Equal(t, &valid, cfg)

	cases := []struct {
		name string
		cfg  Config
	}{
		{"bad format", Config{LogFormat: "yaml", LogLevel: "info"}},
		{"bad level", Config{LogFormat: "text", LogLevel: "verbose"}},
		{"negative port", Config{LogFormat: "text", LogLevel: "info", StatusPort: -1}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
		})
	}
}
