package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/adeptcoder014/devstrap/internal/supervise"
)

// statusState tracks the supervisor's view of the launch for the status
// endpoint.
type statusState struct {
	mu        sync.Mutex
	state     string
	pid       int
	restarts  int
	startedAt time.Time
}

func newStatusState() *statusState {
	return &statusState{
		state:     "bootstrapping",
		startedAt: time.Now().UTC(),
	}
}

func (s *statusState) set(state string, pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == string(supervise.StateRestarting) {
		s.restarts++
	}
	s.state = state
	s.pid = pid
}

func (s *statusState) snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"state":      s.state,
		"pid":        s.pid,
		"restarts":   s.restarts,
		"started_at": s.startedAt.Format(time.RFC3339),
	}
}

// healthHandler answers liveness checks for the launcher itself.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports the supervisor state as JSON.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.status.snapshot()); err != nil {
		a.logger.Error("Failed to encode status response.", "error", err)
	}
}

// startStatusServer initializes and runs the supervisor status HTTP server.
func (a *App) startStatusServer(port int) {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)

	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("Status server starting.", "address", fmt.Sprintf("http://localhost%s/status", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Status server failed.", "error", err)
		}
	}()
}
