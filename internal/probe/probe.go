// Package probe polls the launched server until it answers, purely to tell
// the operator when the documented endpoint is reachable. A probe failure
// never stops the server.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Probe waits for the development server to answer on its root endpoint.
type Probe struct {
	// BaseURL is the address polled, e.g. "http://localhost:8000".
	BaseURL string
	// Interval is the delay between attempts.
	Interval time.Duration
	// Window is the total time to keep trying.
	Window time.Duration
	// Client is the HTTP client used for attempts.
	Client *http.Client
}

// New builds a Probe for the given endpoint. A wildcard bind host is probed
// through localhost, which is how the README documents the endpoint.
func New(host string, port int) *Probe {
	if host == "0.0.0.0" || host == "::" || host == "" {
		host = "localhost"
	}

	return &Probe{
		BaseURL:  fmt.Sprintf("http://%s:%d", host, port),
		Interval: 250 * time.Millisecond,
		Window:   30 * time.Second,
		Client:   &http.Client{Timeout: 2 * time.Second},
	}
}

// Wait polls the base URL until any HTTP response arrives. Any status code
// counts: the server is listening, which is all the probe asserts.
func (p *Probe) Wait(ctx context.Context) error {
	deadline := time.Now().Add(p.Window)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/", nil)
		if err != nil {
			return fmt.Errorf("build probe request: %w", err)
		}

		resp, err := p.Client.Do(req)
		if err == nil {
			resp.Body.Close()
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("server did not answer at %s within %s", p.BaseURL, p.Window)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
