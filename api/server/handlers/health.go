package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type HealthHandler struct {
	dbPing func(context.Context) error
}

func NewHealthHandler(dbPing func(context.Context) error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

type HealthStatus struct {
	Status     string               `json:"status"` // "healthy", "unhealthy"
	Timestamp  time.Time            `json:"timestamp"`
	Components map[string]Component `json:"components"`
}

type Component struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency int64  `json:"latency_ms,omitempty"`
}

// Health handles GET /health/full and checks dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := HealthStatus{
		Timestamp:  time.Now().UTC(),
		Status:     "healthy",
		Components: make(map[string]Component),
	}

	if h.dbPing != nil {
		start := time.Now()
		err := h.dbPing(ctx)
		latency := time.Since(start).Milliseconds()

		if err != nil {
			status.Components["database"] = Component{
				Status:  "unhealthy",
				Message: err.Error(),
				Latency: latency,
			}
			status.Status = "unhealthy"
		} else {
			status.Components["database"] = Component{
				Status:  "healthy",
				Latency: latency,
			}
		}
	}

	httpStatus := http.StatusOK
	if status.Status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(status)
}

// Readiness handles GET /health/ready with a lightweight database check.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}
