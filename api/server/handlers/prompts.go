package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type PromptHandler struct {
	promptSvc *services.PromptService
}

func NewPromptHandler(promptSvc *services.PromptService) *PromptHandler {
	return &PromptHandler{promptSvc: promptSvc}
}

// Create creates a prompt together with its first version, so a prompt is
// always runnable immediately.
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Description  *string `json:"description"`
		Template     string  `json:"template"`
		SystemPrompt *string `json:"system_prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Template == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	prompt, version, err := h.promptSvc.Create(r.Context(), req.Name, req.Description, req.Template, req.SystemPrompt)
	if err != nil {
		respondDomainError(w, err, "failed to create prompt")
		return
	}

	respondJSON(w, map[string]any{"prompt": prompt, "version": version}, http.StatusCreated)
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	prompts, err := h.promptSvc.List(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err, "failed to list prompts")
		return
	}
	if prompts == nil {
		prompts = []*domain.Prompt{}
	}

	respondJSON(w, map[string]any{"prompts": prompts}, http.StatusOK)
}

// Get returns the prompt together with its live versions.
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	prompt, err := h.promptSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get prompt")
		return
	}

	versions, err := h.promptSvc.ListVersions(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to list versions")
		return
	}
	if versions == nil {
		versions = []*domain.PromptVersion{}
	}

	respondJSON(w, map[string]any{"prompt": prompt, "versions": versions}, http.StatusOK)
}

func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	prompt, err := h.promptSvc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get prompt")
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
		prompt.Name = *req.Name
	}
	if req.Description != nil {
		prompt.Description = req.Description
	}

	if err := h.promptSvc.Update(r.Context(), prompt); err != nil {
		respondDomainError(w, err, "failed to update prompt")
		return
	}

	respondJSON(w, prompt, http.StatusOK)
}

func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.promptSvc.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete prompt")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateVersion appends a new immutable version to the prompt. The version
// number is assigned server-side and never reused.
func (h *PromptHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req struct {
		Template     string  `json:"template"`
		SystemPrompt *string `json:"system_prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Template == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	version, err := h.promptSvc.CreateVersion(r.Context(), id, req.Template, req.SystemPrompt)
	if err != nil {
		respondDomainError(w, err, "failed to create version")
		return
	}

	respondJSON(w, version, http.StatusCreated)
}

func (h *PromptHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	versions, err := h.promptSvc.ListVersions(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to list versions")
		return
	}
	if versions == nil {
		versions = []*domain.PromptVersion{}
	}

	respondJSON(w, map[string]any{"versions": versions}, http.StatusOK)
}

func (h *PromptHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	version, err := h.promptSvc.GetVersion(r.Context(), id)
	if err != nil {
		respondDomainError(w, err, "failed to get version")
		return
	}

	respondJSON(w, version, http.StatusOK)
}

func (h *PromptHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		respondError(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.promptSvc.DeleteVersion(r.Context(), id); err != nil {
		respondDomainError(w, err, "failed to delete version")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
