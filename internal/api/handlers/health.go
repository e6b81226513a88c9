package handlers

import (
	"context"
	"logistics-backoffice/internal/platform/logger"
	"net/http"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	DB  Pinger
	Log *logger.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.Ping(r.Context()); err != nil {
			h.Log.Warn("health check: database unreachable", "error", err)
			writeJSON(w, r, h.Log, http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  "database connection failed",
			})
			return
		}
	}

	writeJSON(w, r, h.Log, http.StatusOK, map[string]string{"status": "ok"})
}
