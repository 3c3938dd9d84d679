package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type ModelHandler struct {
	modelSvc *services.ModelService
}

func NewModelHandler(modelSvc *services.ModelService) *ModelHandler {
	return &ModelHandler{modelSvc: modelSvc}
}

func (h *ModelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := h.modelSvc.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "failed to create model")
		return
	}

	respondJSON(w, model, http.StatusCreated)
}

// List synchronizes with the gateway's advertised models before listing,
// so freshly available backends show up without a separate sync call. A
// sync failure is logged and the stored models are served as-is.
func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	if _, err := h.modelSvc.Sync(r.Context()); err != nil {
		slog.Warn("model sync failed, serving stored models", "error", err)
	}

	models, err := h.modelSvc.List(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list models")
		return
	}
	if models == nil {
		models = []*domain.Model{}
	}

	respondJSON(w, map[string]any{"models": models}, http.StatusOK)
}

func (h *ModelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	model, err := h.modelSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get model")
		return
	}

	respondJSON(w, model, http.StatusOK)
}
