package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/gateway"
)

// ============================================================================
// Common mock implementations shared across tests
// ============================================================================

// mockStore is an in-memory store backing the orchestrator, recorder and
// reconstructor tests.
type mockStore struct {
	mu sync.Mutex

	inputs      map[int64]*domain.Input
	prompts     map[int64]*domain.Prompt
	versions    map[int64]*domain.PromptVersion
	models      map[int64]*domain.Model
	outputs     map[int64]*domain.Output
	evaluations map[int64]*domain.Evaluation // keyed by output id

	nextInputID  int64
	nextOutputID int64
	nextEvalID   int64
}

func newMockStore() *mockStore {
	return &mockStore{
		inputs:      make(map[int64]*domain.Input),
		prompts:     make(map[int64]*domain.Prompt),
		versions:    make(map[int64]*domain.PromptVersion),
		models:      make(map[int64]*domain.Model),
		outputs:     make(map[int64]*domain.Output),
		evaluations: make(map[int64]*domain.Evaluation),
	}
}

func (m *mockStore) addInput(id int64, text string) *domain.Input {
	in := &domain.Input{ID: id, Text: text}
	m.inputs[id] = in
	if id >= m.nextInputID {
		m.nextInputID = id
	}
	return in
}

func (m *mockStore) addPrompt(id int64, name string) *domain.Prompt {
	p := &domain.Prompt{ID: id, Name: name}
	m.prompts[id] = p
	return p
}

func (m *mockStore) addVersion(id, promptID int64, number int, template string, systemPrompt *string) *domain.PromptVersion {
	v := &domain.PromptVersion{ID: id, PromptID: promptID, VersionNumber: number, Template: template, SystemPrompt: systemPrompt}
	m.versions[id] = v
	return v
}

func (m *mockStore) addModel(id int64, name string) *domain.Model {
	mod := &domain.Model{ID: id, Name: name}
	m.models[id] = mod
	return mod
}

func (m *mockStore) GetInput(ctx context.Context, id int64) (*domain.Input, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in, ok := m.inputs[id]; ok {
		return in, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateInput(ctx context.Context, in *domain.Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextInputID++
	in.ID = m.nextInputID
	m.inputs[in.ID] = in
	return nil
}

func (m *mockStore) GetPrompt(ctx context.Context, id int64) (*domain.Prompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.prompts[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetModel(ctx context.Context, id int64) (*domain.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mod, ok := m.models[id]; ok {
		return mod, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) FindOutput(ctx context.Context, inputID, promptID, versionID, modelID int64) (*domain.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, out := range m.outputs {
		if out.InputID == inputID && out.PromptID == promptID &&
			out.PromptVersionID == versionID && out.ModelID == modelID {
			return out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateOutput(ctx context.Context, out *domain.Output) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOutputID++
	out.ID = m.nextOutputID
	m.outputs[out.ID] = out
	return nil
}

func (m *mockStore) GetOutput(ctx context.Context, id int64) (*domain.Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if out, ok := m.outputs[id]; ok {
		return out, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpsertEvaluation(ctx context.Context, e *domain.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.evaluations[e.OutputID]; ok {
		existing.Quality = e.Quality
		existing.Notes = e.Notes
		*e = *existing
		return nil
	}
	m.nextEvalID++
	e.ID = m.nextEvalID
	m.evaluations[e.OutputID] = e
	return nil
}

func (m *mockStore) GetEvaluationByOutput(ctx context.Context, outputID int64) (*domain.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.evaluations[outputID]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListEvaluations(ctx context.Context, limit, offset int) ([]*domain.EvaluationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var details []*domain.EvaluationDetail
	for _, e := range m.evaluations {
		details = append(details, &domain.EvaluationDetail{Evaluation: *e})
	}
	return details, nil
}

func (m *mockStore) ListInputHistory(ctx context.Context, inputID int64) ([]*domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []*domain.HistoryEntry
	for _, out := range m.outputs {
		if out.InputID != inputID {
			continue
		}
		entry := &domain.HistoryEntry{Output: *out}
		if v, ok := m.versions[out.PromptVersionID]; ok {
			entry.VersionNumber = v.VersionNumber
			entry.Template = v.Template
		}
		if p, ok := m.prompts[out.PromptID]; ok {
			entry.PromptName = p.Name
		}
		if mod, ok := m.models[out.ModelID]; ok {
			entry.ModelName = mod.Name
		}
		if e, ok := m.evaluations[out.ID]; ok {
			entry.Evaluation = e
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m *mockStore) outputCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.outputs)
}

// ResolveVersion mirrors the prompt service: explicit version wins when it
// belongs to the prompt, otherwise the highest-numbered version.
func (m *mockStore) ResolveVersion(ctx context.Context, promptID int64, explicitVersionID *int64) (*domain.PromptVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if explicitVersionID != nil {
		v, ok := m.versions[*explicitVersionID]
		if !ok || v.PromptID != promptID {
			return nil, domain.ErrNotFound
		}
		return v, nil
	}

	var latest *domain.PromptVersion
	for _, v := range m.versions {
		if v.PromptID != promptID {
			continue
		}
		if latest == nil || v.VersionNumber > latest.VersionNumber {
			latest = v
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// mockGenerator records prompts it was asked to generate and can be told
// to fail for specific models.
type mockGenerator struct {
	mu         sync.Mutex
	calls      []generatorCall
	failModels map[string]bool
}

type generatorCall struct {
	Model        string
	Prompt       string
	SystemPrompt string
}

func newMockGenerator() *mockGenerator {
	return &mockGenerator{failModels: make(map[string]bool)}
}

func (g *mockGenerator) Generate(ctx context.Context, modelName, prompt, systemPrompt string) (*gateway.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generatorCall{Model: modelName, Prompt: prompt, SystemPrompt: systemPrompt})

	if g.failModels[modelName] {
		return nil, &domain.GenerationError{ModelName: modelName, Err: fmt.Errorf("backend down")}
	}
	return &gateway.Result{
		Text:           fmt.Sprintf("%s says: %s", modelName, prompt),
		ProcessingTime: 0.01,
	}, nil
}

func (g *mockGenerator) ListAvailableModels(ctx context.Context) ([]gateway.ModelInfo, error) {
	return []gateway.ModelInfo{{Name: "mock-model"}}, nil
}

func (g *mockGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
