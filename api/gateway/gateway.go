// Package gateway turns {model, prompt text, system prompt} into generated
// text plus timing. The orchestrator is written against the Generator
// interface only; whether calls hit a real OpenAI-compatible endpoint or
// the built-in stub is decided once at construction time.
package gateway

import "context"

// Result is the outcome of one generation call.
type Result struct {
	Text           string
	ProcessingTime float64 // seconds
}

// ModelInfo describes one model the backend advertises.
type ModelInfo struct {
	Name        string
	Description *string
}

// Generator is the generation capability the orchestrator consumes.
type Generator interface {
	// Generate produces text for an already-substituted prompt. The prompt
	// must not contain the {{input}} placeholder anymore; substitution is
	// the caller's responsibility.
	Generate(ctx context.Context, modelName, prompt, systemPrompt string) (*Result, error)

	// ListAvailableModels returns the models the backend advertises. Only
	// the model-synchronization path consumes this.
	ListAvailableModels(ctx context.Context) ([]ModelInfo, error)
}
