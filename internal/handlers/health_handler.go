package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by both the database manager and the Redis
// client wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["redis"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, status)
}
