// Package probe serves the liveness endpoint and a JSON echo used to check
// request decoding end to end.
package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "studylab/pkg/domain-errors"
	"studylab/pkg/platform/httputil"
)

// Checker reports whether a backing dependency is reachable.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckFunc adapts a plain function, such as (*sql.DB).PingContext, to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Health(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks map[string]Checker
}

// New returns a Handler. Checks are optional; each one is reported by name on /health.
func New(checks map[string]Checker) *Handler {
	return &Handler{checks: checks}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Post("/test", h.handleEcho)
}

// EchoRequest mirrors the body the echo endpoint accepts and returns.
type EchoRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (h *Handler) handleEcho(w http.ResponseWriter, r *http.Request) {
	var req EchoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check.Health(ctx); err != nil {
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	httputil.WriteJSON(w, status, resp)
}
