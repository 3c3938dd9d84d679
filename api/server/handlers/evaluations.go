package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type EvaluationHandler struct {
	evalSvc *services.EvaluationService
}

func NewEvaluationHandler(evalSvc *services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

// Upsert records the quality judgment for an output. Re-submitting for the
// same output replaces the earlier judgment.
func (h *EvaluationHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	outputID, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req struct {
		Quality domain.Quality `json:"quality"`
		Notes   *string        `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eval, err := h.evalSvc.Upsert(r.Context(), outputID, req.Quality, req.Notes)
	if err != nil {
		respondDomainError(w, err, "failed to record evaluation")
		return
	}

	respondJSON(w, eval, http.StatusOK)
}

func (h *EvaluationHandler) GetByOutput(w http.ResponseWriter, r *http.Request) {
	outputID, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	eval, err := h.evalSvc.GetByOutput(r.Context(), outputID)
	if err != nil {
		respondDomainError(w, err, "failed to get evaluation")
		return
	}

	respondJSON(w, eval, http.StatusOK)
}

func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	evals, err := h.evalSvc.List(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list evaluations")
		return
	}
	if evals == nil {
		evals = []*domain.EvaluationDetail{}
	}

	respondJSON(w, map[string]any{"evaluations": evals}, http.StatusOK)
}
