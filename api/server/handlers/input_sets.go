package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type InputSetHandler struct {
	inputSvc *services.InputService
}

func NewInputSetHandler(inputSvc *services.InputService) *InputSetHandler {
	return &InputSetHandler{inputSvc: inputSvc}
}

func (h *InputSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	set, err := h.inputSvc.CreateSet(r.Context(), req.Name, req.Description)
	if err != nil {
		respondDomainError(w, err, "failed to create input set")
		return
	}

	respondJSON(w, set, http.StatusCreated)
}

func (h *InputSetHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	sets, err := h.inputSvc.ListSets(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list input sets")
		return
	}
	if sets == nil {
		sets = []*domain.InputSet{}
	}

	respondJSON(w, map[string]any{"input_sets": sets}, http.StatusOK)
}

func (h *InputSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	set, err := h.inputSvc.GetSet(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get input set")
		return
	}

	respondJSON(w, set, http.StatusOK)
}

func (h *InputSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	set, err := h.inputSvc.GetSet(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get input set")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		set.Name = *req.Name
	}
	if req.Description != nil {
		set.Description = req.Description
	}

	if err := h.inputSvc.UpdateSet(r.Context(), set); err != nil {
		respondDomainError(w, err, "failed to update input set")
		return
	}

	respondJSON(w, set, http.StatusOK)
}

func (h *InputSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.inputSvc.DeleteSet(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete input set")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InputSetHandler) ListInputs(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}
	limit, offset := pagination(r)

	if _, err := h.inputSvc.GetSet(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to get input set")
		return
	}

	inputs, err := h.inputSvc.ListBySet(r.Context(), id, limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list inputs")
		return
	}
	if inputs == nil {
		inputs = []*domain.Input{}
	}

	respondJSON(w, map[string]any{"inputs": inputs}, http.StatusOK)
}

func (h *InputSetHandler) CreateInput(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req struct {
		Text string  `json:"text"`
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input, err := h.inputSvc.CreateInSet(r.Context(), id, req.Text, req.Name)
	if err != nil {
		respondDomainError(w, err, "failed to create input")
		return
	}

	respondJSON(w, input, http.StatusCreated)
}
