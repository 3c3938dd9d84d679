package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/JohannesStutz/llm-evaluator/api/services"
)

type CompareHandler struct {
	comparisonSvc *services.ComparisonService
}

func NewCompareHandler(comparisonSvc *services.ComparisonService) *CompareHandler {
	return &CompareHandler{comparisonSvc: comparisonSvc}
}

// parseVersionOverrides converts the JSON object form (prompt id as string
// key, version id as value) into the map the orchestrator expects.
func parseVersionOverrides(raw map[string]int64) (map[int64]int64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	overrides := make(map[int64]int64, len(raw))
	for key, versionID := range raw {
		promptID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, err
		}
		overrides[promptID] = versionID
	}
	return overrides, nil
}

// Compare runs stored inputs through every prompt × model pairing, reusing
// outputs that already exist for a combination.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InputIDs         []int64          `json:"input_ids"`
		PromptIDs        []int64          `json:"prompt_ids"`
		ModelIDs         []int64          `json:"model_ids"`
		VersionOverrides map[string]int64 `json:"version_overrides"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.InputIDs) == 0 || len(req.PromptIDs) == 0 || len(req.ModelIDs) == 0 {
		respondError(w, "input_ids, prompt_ids and model_ids are required", http.StatusBadRequest)
		return
	}

	overrides, err := parseVersionOverrides(req.VersionOverrides)
	if err != nil {
		respondError(w, "invalid version_overrides", http.StatusBadRequest)
		return
	}

	groups, err := h.comparisonSvc.Compare(r.Context(), req.InputIDs, req.PromptIDs, req.ModelIDs, overrides)
	if err != nil {
		respondDomainError(w, err, "comparison failed")
		return
	}

	respondJSON(w, map[string]any{"comparisons": groups}, http.StatusOK)
}

// Process runs one freshly submitted text through every model × prompt
// pairing. The text always becomes a new input; nothing is deduplicated.
func (h *CompareHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text             string           `json:"text"`
		ModelIDs         []int64          `json:"model_ids"`
		PromptIDs        []int64          `json:"prompt_ids"`
		VersionOverrides map[string]int64 `json:"version_overrides"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.ModelIDs) == 0 || len(req.PromptIDs) == 0 {
		respondError(w, "model_ids and prompt_ids are required", http.StatusBadRequest)
		return
	}

	overrides, err := parseVersionOverrides(req.VersionOverrides)
	if err != nil {
		respondError(w, "invalid version_overrides", http.StatusBadRequest)
		return
	}

	results, err := h.comparisonSvc.BatchProcess(r.Context(), []string{req.Text}, req.ModelIDs, req.PromptIDs, overrides)
	if err != nil {
		respondDomainError(w, err, "processing failed")
		return
	}

	respondJSON(w, results[0], http.StatusOK)
}

// BatchProcess is Process over several texts in one call.
func (h *CompareHandler) BatchProcess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts            []string         `json:"texts"`
		ModelIDs         []int64          `json:"model_ids"`
		PromptIDs        []int64          `json:"prompt_ids"`
		VersionOverrides map[string]int64 `json:"version_overrides"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 || len(req.ModelIDs) == 0 || len(req.PromptIDs) == 0 {
		respondError(w, "texts, model_ids and prompt_ids are required", http.StatusBadRequest)
		return
	}

	overrides, err := parseVersionOverrides(req.VersionOverrides)
	if err != nil {
		respondError(w, "invalid version_overrides", http.StatusBadRequest)
		return
	}

	results, err := h.comparisonSvc.BatchProcess(r.Context(), req.Texts, req.ModelIDs, req.PromptIDs, overrides)
	if err != nil {
		respondDomainError(w, err, "batch processing failed")
		return
	}

	respondJSON(w, map[string]any{"results": results}, http.StatusOK)
}
