package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

var errNoChoices = errors.New("backend returned no choices")

var (
	_ Generator = (*OpenAIGateway)(nil)
	_ Generator = (*StubGateway)(nil)
)

// stubModels are the models the stub advertises.
var stubModels = []ModelInfo{
	{Name: "gpt4all", Description: ptr("Local GPT4All model (stub)")},
	{Name: "llama2", Description: ptr("Local Llama2 model (stub)")},
	{Name: "mistral", Description: ptr("Local Mistral model (stub)")},
}

func ptr(s string) *string { return &s }

// StubGateway produces deterministic canned responses. It stands in for a
// real backend in local development and tests; selection between the two
// happens once at construction time.
type StubGateway struct {
	// Delay simulates backend latency. Zero in tests.
	Delay time.Duration
}

func NewStubGateway() *StubGateway {
	return &StubGateway{Delay: 100 * time.Millisecond}
}

// Generate returns a canned response keyed on the model name.
func (g *StubGateway) Generate(ctx context.Context, modelName, prompt, systemPrompt string) (*Result, error) {
	known := false
	for _, m := range stubModels {
		if m.Name == modelName {
			known = true
			break
		}
	}
	if !known {
		return nil, &domain.GenerationError{
			ModelName: modelName,
			Err:       fmt.Errorf("model %s not found", modelName),
		}
	}

	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, &domain.GenerationError{ModelName: modelName, Err: ctx.Err()}
		}
	}

	start := time.Now()
	text := fmt.Sprintf("%s response: simulated output for a prompt of %d characters.", modelName, len(prompt))
	if systemPrompt != "" {
		text = fmt.Sprintf("%s (system prompt: %d characters)", text, len(systemPrompt))
	}

	return &Result{
		Text:           text,
		ProcessingTime: time.Since(start).Seconds() + g.Delay.Seconds(),
	}, nil
}

// ListAvailableModels returns the fixed stub model list.
func (g *StubGateway) ListAvailableModels(ctx context.Context) ([]ModelInfo, error) {
	models := make([]ModelInfo, len(stubModels))
	copy(models, stubModels)
	return models, nil
}
