// Package handlers contains the HTTP boundary: request decoding,
// response encoding and error-to-status mapping. Handlers stay thin and
// delegate all behavior to the services.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

type contextKey string

const requestIDKey contextKey = "request_id"

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func SetRequestIDInContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

// respondDomainError maps the error taxonomy onto HTTP statuses. The
// fallback message keeps internal details out of responses.
func respondDomainError(w http.ResponseWriter, err error, fallback string) {
	var genErr *domain.GenerationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalid):
		respondError(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, domain.ErrConflict):
		respondError(w, "already exists", http.StatusConflict)
	case errors.As(err, &genErr):
		respondError(w, genErr.Error(), http.StatusBadGateway)
	default:
		slog.Error(fallback, "error", err)
		respondError(w, fallback, http.StatusInternalServerError)
	}
}

func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// pagination reads limit/offset with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = parseIntQuery(r, "limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}
	offset = parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
