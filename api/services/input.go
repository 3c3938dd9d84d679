package services

import (
	"context"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/store"
)

// InputService handles input and input set management.
type InputService struct {
	store *store.Store
}

func NewInputService(s *store.Store) *InputService {
	return &InputService{store: s}
}

// CreateSet creates a new input set.
func (svc *InputService) CreateSet(ctx context.Context, name string, description *string) (*domain.InputSet, error) {
	set := &domain.InputSet{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.store.CreateInputSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// GetSet retrieves an input set by ID.
func (svc *InputService) GetSet(ctx context.Context, id int64) (*domain.InputSet, error) {
	return svc.store.GetInputSet(ctx, id)
}

// ListSets retrieves input sets with pagination.
func (svc *InputService) ListSets(ctx context.Context, limit, offset int) ([]*domain.InputSet, error) {
	return svc.store.ListInputSets(ctx, limit, offset)
}

// UpdateSet updates an input set's name and description.
func (svc *InputService) UpdateSet(ctx context.Context, set *domain.InputSet) error {
	return svc.store.UpdateInputSet(ctx, set)
}

// DeleteSet deletes an input set, its inputs, their outputs and any
// evaluations on those outputs.
func (svc *InputService) DeleteSet(ctx context.Context, id int64) error {
	return svc.store.DeleteInputSet(ctx, id)
}

// Create creates a standalone input.
func (svc *InputService) Create(ctx context.Context, text string, name *string) (*domain.Input, error) {
	in := &domain.Input{
		Text:      text,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.store.CreateInput(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// CreateInSet creates an input inside an existing set. Fails with
// domain.ErrNotFound when the set does not exist.
func (svc *InputService) CreateInSet(ctx context.Context, inputSetID int64, text string, name *string) (*domain.Input, error) {
	if _, err := svc.store.GetInputSet(ctx, inputSetID); err != nil {
		return nil, err
	}

	in := &domain.Input{
		InputSetID: &inputSetID,
		Text:       text,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := svc.store.CreateInput(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Get retrieves an input by ID.
func (svc *InputService) Get(ctx context.Context, id int64) (*domain.Input, error) {
	return svc.store.GetInput(ctx, id)
}

// List retrieves inputs with pagination.
func (svc *InputService) List(ctx context.Context, limit, offset int) ([]*domain.Input, error) {
	return svc.store.ListInputs(ctx, limit, offset)
}

// ListBySet retrieves the inputs of one set.
func (svc *InputService) ListBySet(ctx context.Context, inputSetID int64, limit, offset int) ([]*domain.Input, error) {
	return svc.store.ListInputsBySet(ctx, inputSetID, limit, offset)
}

// ListOutputs returns everything generated for an input, newest first.
func (svc *InputService) ListOutputs(ctx context.Context, inputID int64) ([]*domain.Output, error) {
	if _, err := svc.store.GetInput(ctx, inputID); err != nil {
		return nil, err
	}
	return svc.store.ListOutputsForInput(ctx, inputID)
}

// Update updates an input's name and text.
func (svc *InputService) Update(ctx context.Context, in *domain.Input) error {
	return svc.store.UpdateInput(ctx, in)
}

// Delete deletes an input together with its outputs and evaluations.
func (svc *InputService) Delete(ctx context.Context, id int64) error {
	return svc.store.DeleteInput(ctx, id)
}
