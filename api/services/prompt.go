// Package services holds the application services between the HTTP
// handlers and the store: prompt versioning, the comparison orchestrator,
// evaluation recording and history reconstruction.
package services

import (
	"context"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/store"
)

// PromptService owns the prompt version lifecycle.
type PromptService struct {
	store *store.Store
}

func NewPromptService(s *store.Store) *PromptService {
	return &PromptService{store: s}
}

// Create creates a prompt and seeds version 1 with the given template in
// one transaction. Every prompt created through this path therefore has at
// least one version.
func (svc *PromptService) Create(ctx context.Context, name string, description *string, template string, systemPrompt *string) (*domain.Prompt, *domain.PromptVersion, error) {
	prompt := &domain.Prompt{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	version := &domain.PromptVersion{
		Template:     template,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}

	err := svc.store.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.store.CreatePrompt(ctx, prompt); err != nil {
			return err
		}
		version.PromptID = prompt.ID
		return svc.store.CreatePromptVersion(ctx, version)
	})
	if err != nil {
		return nil, nil, err
	}
	return prompt, version, nil
}

// Get retrieves a prompt by ID.
func (svc *PromptService) Get(ctx context.Context, id int64) (*domain.Prompt, error) {
	return svc.store.GetPrompt(ctx, id)
}

// List retrieves prompts with pagination.
func (svc *PromptService) List(ctx context.Context, limit, offset int) ([]*domain.Prompt, error) {
	return svc.store.ListPrompts(ctx, limit, offset)
}

// Update updates a prompt's name and description.
func (svc *PromptService) Update(ctx context.Context, p *domain.Prompt) error {
	return svc.store.UpdatePrompt(ctx, p)
}

// Delete deletes a prompt and everything generated from it.
func (svc *PromptService) Delete(ctx context.Context, id int64) error {
	return svc.store.DeletePrompt(ctx, id)
}

// CreateVersion appends a new immutable version to an existing prompt.
// Fails with domain.ErrNotFound if the prompt does not exist.
func (svc *PromptService) CreateVersion(ctx context.Context, promptID int64, template string, systemPrompt *string) (*domain.PromptVersion, error) {
	if _, err := svc.store.GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}

	version := &domain.PromptVersion{
		PromptID:     promptID,
		Template:     template,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now().UTC(),
	}
	if err := svc.store.CreatePromptVersion(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

// ResolveVersion returns the version to use for a prompt. An explicit
// version ID wins but must belong to the prompt; otherwise the version
// with the highest number is used.
func (svc *PromptService) ResolveVersion(ctx context.Context, promptID int64, explicitVersionID *int64) (*domain.PromptVersion, error) {
	if explicitVersionID != nil {
		version, err := svc.store.GetPromptVersion(ctx, *explicitVersionID)
		if err != nil {
			return nil, err
		}
		if version.PromptID != promptID {
			return nil, domain.ErrNotFound
		}
		return version, nil
	}
	return svc.store.GetLatestPromptVersion(ctx, promptID)
}

// GetVersion retrieves a single version by ID.
func (svc *PromptService) GetVersion(ctx context.Context, id int64) (*domain.PromptVersion, error) {
	return svc.store.GetPromptVersion(ctx, id)
}

// ListVersions returns a prompt's versions in ascending version order.
func (svc *PromptService) ListVersions(ctx context.Context, promptID int64) ([]*domain.PromptVersion, error) {
	if _, err := svc.store.GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}
	return svc.store.ListPromptVersions(ctx, promptID)
}

// DeleteVersion soft-deletes a version. Its number is never reused.
func (svc *PromptService) DeleteVersion(ctx context.Context, id int64) error {
	return svc.store.DeletePromptVersion(ctx, id)
}
