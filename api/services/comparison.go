package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/gateway"
	"github.com/JohannesStutz/llm-evaluator/api/metrics"
)

// ComparisonStore is the slice of the store the orchestrator needs.
type ComparisonStore interface {
	GetInput(ctx context.Context, id int64) (*domain.Input, error)
	CreateInput(ctx context.Context, in *domain.Input) error
	GetPrompt(ctx context.Context, id int64) (*domain.Prompt, error)
	GetModel(ctx context.Context, id int64) (*domain.Model, error)
	FindOutput(ctx context.Context, inputID, promptID, versionID, modelID int64) (*domain.Output, error)
	CreateOutput(ctx context.Context, out *domain.Output) error
}

// VersionResolver resolves which prompt version applies to a prompt.
// *PromptService implements it.
type VersionResolver interface {
	ResolveVersion(ctx context.Context, promptID int64, explicitVersionID *int64) (*domain.PromptVersion, error)
}

// PromptResult is one row of a comparison: the output for a single
// (prompt version, model) pairing, flagged as reused or freshly generated.
type PromptResult struct {
	PromptID        int64          `json:"prompt_id"`
	PromptName      string         `json:"prompt_name"`
	PromptVersionID int64          `json:"prompt_version_id"`
	VersionNumber   int            `json:"version_number"`
	ModelID         int64          `json:"model_id"`
	ModelName       string         `json:"model_name"`
	Output          *domain.Output `json:"output"`
	FromCache       bool           `json:"from_cache"`
}

// InputComparison groups the result rows of one requested input. Input is
// nil and Results empty when the input id did not resolve.
type InputComparison struct {
	InputID int64           `json:"input_id"`
	Input   *domain.Input   `json:"input,omitempty"`
	Results []*PromptResult `json:"results"`
}

// ComparisonService fans a request out across inputs × prompts × models,
// reusing existing outputs and tolerating failures per combination. The
// loops are sequential by design: failures stay isolated to one
// combination and result ordering matches the caller's iteration order.
type ComparisonService struct {
	store    ComparisonStore
	versions VersionResolver
	gen      gateway.Generator
}

func NewComparisonService(s ComparisonStore, versions VersionResolver, gen gateway.Generator) *ComparisonService {
	return &ComparisonService{store: s, versions: versions, gen: gen}
}

// Compare runs the cross-product of the given inputs, prompts and models.
// IDs are iterated in the order supplied. A missing input, prompt, version
// or model, or a failed generation, skips that combination and the batch
// continues; no error from a single combination escapes this method.
func (svc *ComparisonService) Compare(ctx context.Context, inputIDs, promptIDs, modelIDs []int64, versionOverrides map[int64]int64) ([]*InputComparison, error) {
	groups := make([]*InputComparison, 0, len(inputIDs))

	for _, inputID := range inputIDs {
		group := &InputComparison{InputID: inputID, Results: []*PromptResult{}}
		groups = append(groups, group)

		input, err := svc.store.GetInput(ctx, inputID)
		if err != nil {
			svc.skip("input", err, "input_id", inputID)
			continue
		}
		group.Input = input

		for _, promptID := range promptIDs {
			prompt, err := svc.store.GetPrompt(ctx, promptID)
			if err != nil {
				svc.skip("prompt", err, "prompt_id", promptID)
				continue
			}

			version, err := svc.resolveVersion(ctx, promptID, versionOverrides)
			if err != nil {
				svc.skip("version", err, "prompt_id", promptID)
				continue
			}

			for _, modelID := range modelIDs {
				model, err := svc.store.GetModel(ctx, modelID)
				if err != nil {
					svc.skip("model", err, "model_id", modelID)
					continue
				}

				result, err := svc.compareOne(ctx, input, prompt, version, model)
				if err != nil {
					// Already counted and logged; the combination is
					// simply absent from the group.
					continue
				}
				group.Results = append(group.Results, result)
			}
		}
	}

	return groups, nil
}

// compareOne resolves one (input, version, model) combination: reuse the
// existing output when the exact combination was computed before,
// otherwise generate and persist a fresh one.
func (svc *ComparisonService) compareOne(ctx context.Context, input *domain.Input, prompt *domain.Prompt, version *domain.PromptVersion, model *domain.Model) (*PromptResult, error) {
	result := &PromptResult{
		PromptID:        prompt.ID,
		PromptName:      prompt.Name,
		PromptVersionID: version.ID,
		VersionNumber:   version.VersionNumber,
		ModelID:         model.ID,
		ModelName:       model.Name,
	}

	existing, err := svc.store.FindOutput(ctx, input.ID, prompt.ID, version.ID, model.ID)
	if err == nil {
		metrics.ComparisonCacheHits.Inc()
		result.Output = existing
		result.FromCache = true
		return result, nil
	}
	metrics.ComparisonCacheMisses.Inc()

	output, err := svc.generate(ctx, input, version, model)
	if err != nil {
		svc.skip("generation", err, "input_id", input.ID, "prompt_version_id", version.ID, "model", model.Name)
		return nil, err
	}

	result.Output = output
	return result, nil
}

// generate renders the version's template for the input, calls the
// gateway and persists the new output.
func (svc *ComparisonService) generate(ctx context.Context, input *domain.Input, version *domain.PromptVersion, model *domain.Model) (*domain.Output, error) {
	prompt, systemPrompt := gateway.Render(version.Template, input.Text, version.SystemPrompt)

	start := time.Now()
	generated, err := svc.gen.Generate(ctx, model.Name, prompt, systemPrompt)
	metrics.GenerationDuration.WithLabelValues(model.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues(model.Name, "error").Inc()
		return nil, err
	}
	metrics.GenerationsTotal.WithLabelValues(model.Name, "ok").Inc()

	output := &domain.Output{
		InputID:         input.ID,
		ModelID:         model.ID,
		PromptID:        version.PromptID,
		PromptVersionID: version.ID,
		Text:            generated.Text,
		ProcessingTime:  generated.ProcessingTime,
		CreatedAt:       time.Now().UTC(),
	}
	if err := svc.store.CreateOutput(ctx, output); err != nil {
		return nil, err
	}
	return output, nil
}

// BatchResult groups the outputs produced for one freshly submitted text.
type BatchResult struct {
	InputID int64           `json:"input_id"`
	Results []*PromptResult `json:"results"`
}

// BatchProcess creates one fresh input per text and runs every model ×
// prompt pairing against it. Identical texts are not deduplicated and no
// existing-output lookup happens here: each call represents freshly
// submitted text and always materializes new outputs.
func (svc *ComparisonService) BatchProcess(ctx context.Context, texts []string, modelIDs, promptIDs []int64, versionOverrides map[int64]int64) ([]*BatchResult, error) {
	results := make([]*BatchResult, 0, len(texts))

	for _, text := range texts {
		input := &domain.Input{Text: text, CreatedAt: time.Now().UTC()}
		if err := svc.store.CreateInput(ctx, input); err != nil {
			return nil, err
		}

		batch := &BatchResult{InputID: input.ID, Results: []*PromptResult{}}
		results = append(results, batch)

		for _, modelID := range modelIDs {
			model, err := svc.store.GetModel(ctx, modelID)
			if err != nil {
				svc.skip("model", err, "model_id", modelID)
				continue
			}

			for _, promptID := range promptIDs {
				prompt, err := svc.store.GetPrompt(ctx, promptID)
				if err != nil {
					svc.skip("prompt", err, "prompt_id", promptID)
					continue
				}
				version, err := svc.resolveVersion(ctx, promptID, versionOverrides)
				if err != nil {
					svc.skip("version", err, "prompt_id", promptID)
					continue
				}

				output, err := svc.generate(ctx, input, version, model)
				if err != nil {
					svc.skip("generation", err, "input_id", input.ID, "model", model.Name)
					continue
				}

				batch.Results = append(batch.Results, &PromptResult{
					PromptID:        prompt.ID,
					PromptName:      prompt.Name,
					PromptVersionID: version.ID,
					VersionNumber:   version.VersionNumber,
					ModelID:         model.ID,
					ModelName:       model.Name,
					Output:          output,
				})
			}
		}
	}

	return results, nil
}

func (svc *ComparisonService) resolveVersion(ctx context.Context, promptID int64, overrides map[int64]int64) (*domain.PromptVersion, error) {
	var explicit *int64
	if versionID, ok := overrides[promptID]; ok {
		explicit = &versionID
	}
	return svc.versions.ResolveVersion(ctx, promptID, explicit)
}

func (svc *ComparisonService) skip(reason string, err error, args ...any) {
	metrics.CombinationsSkipped.WithLabelValues(reason).Inc()
	slog.Warn("skipping combination", append([]any{"reason", reason, "error", err}, args...)...)
}
