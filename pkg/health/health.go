// Package health provides Kubernetes-style liveness and readiness probe
// endpoints.
//
// Checks run on demand when a probe endpoint is hit, each under its own
// timeout. The service also carries a manual ready gate: readiness reports
// unhealthy until SetReady(true) is called, and flipping it back to false
// during shutdown drains traffic away before the listener stops.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc is a health check function. It should return nil if the checked
// component is healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc
}

// Health manages liveness and readiness checks for a service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []check
	readiness []check
}

// New creates a Health instance. The service starts not ready; call
// SetReady(true) once initialization completes.
func New() *Health {
	return &Health{}
}

// AddLivenessCheck registers a liveness check. Liveness checks determine
// whether the process is alive at all; failing them invites a restart.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a readiness check. Readiness checks determine
// whether the service should receive traffic.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, check{name: name, timeout: timeout, fn: fn})
}

// SetReady sets the manual ready gate. Typically called with true after
// startup and with false at the beginning of graceful shutdown.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the ready gate is open and all readiness checks
// currently pass.
func (h *Health) IsReady(ctx context.Context) bool {
	if !h.ready.Load() {
		return false
	}
	h.mu.RLock()
	checks := h.readiness
	h.mu.RUnlock()

	_, ok := runChecks(ctx, checks)
	return ok
}

// LiveEndpoint is an http.HandlerFunc serving the liveness probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := h.liveness
	h.mu.RUnlock()

	results, ok := runChecks(r.Context(), checks)
	writeProbe(w, results, ok)
}

// ReadyEndpoint is an http.HandlerFunc serving the readiness probe.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeProbe(w, map[string]string{"service": "not ready"}, false)
		return
	}

	h.mu.RLock()
	checks := h.readiness
	h.mu.RUnlock()

	results, ok := runChecks(r.Context(), checks)
	writeProbe(w, results, ok)
}

func runChecks(ctx context.Context, checks []check) (map[string]string, bool) {
	results := make(map[string]string, len(checks))
	ok := true
	for _, c := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.fn(checkCtx)
		cancel()

		if err != nil {
			results[c.name] = err.Error()
			ok = false
		} else {
			results[c.name] = "ok"
		}
	}
	return results, ok
}

type probeResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeProbe(w http.ResponseWriter, results map[string]string, ok bool) {
	status := "ok"
	code := http.StatusOK
	if !ok {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(probeResponse{Status: status, Checks: results})
}
