package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type InputHandler struct {
	inputSvc   *services.InputService
	historySvc *services.HistoryService
}

func NewInputHandler(inputSvc *services.InputService, historySvc *services.HistoryService) *InputHandler {
	return &InputHandler{inputSvc: inputSvc, historySvc: historySvc}
}

func (h *InputHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string  `json:"text"`
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input, err := h.inputSvc.Create(r.Context(), req.Text, req.Name)
	if err != nil {
		respondDomainError(w, err, "failed to create input")
		return
	}

	respondJSON(w, input, http.StatusCreated)
}

func (h *InputHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	inputs, err := h.inputSvc.List(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list inputs")
		return
	}
	if inputs == nil {
		inputs = []*domain.Input{}
	}

	respondJSON(w, map[string]any{"inputs": inputs}, http.StatusOK)
}

func (h *InputHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	input, err := h.inputSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get input")
		return
	}

	respondJSON(w, input, http.StatusOK)
}

func (h *InputHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	input, err := h.inputSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get input")
		return
	}

	var req struct {
		Text *string `json:"text"`
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text != nil {
		input.Text = *req.Text
	}
	if req.Name != nil {
		input.Name = req.Name
	}

	if err := h.inputSvc.Update(r.Context(), input); err != nil {
		respondDomainError(w, err, "failed to update input")
		return
	}

	respondJSON(w, input, http.StatusOK)
}

func (h *InputHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.inputSvc.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete input")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOutputs returns an input's raw outputs without the joined context
// the history view carries.
func (h *InputHandler) ListOutputs(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	outputs, err := h.inputSvc.ListOutputs(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to list outputs")
		return
	}
	if outputs == nil {
		outputs = []*domain.Output{}
	}

	respondJSON(w, map[string]any{"outputs": outputs}, http.StatusOK)
}

// History returns everything ever generated for one input, newest first.
// A missing input is reported with found=false rather than a 404 so the
// caller can render an empty history.
func (h *InputHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	history, err := h.historySvc.History(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to load history")
		return
	}

	respondJSON(w, history, http.StatusOK)
}
