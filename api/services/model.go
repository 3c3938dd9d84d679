package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
	"github.com/JohannesStutz/llm-evaluator/api/gateway"
	"github.com/JohannesStutz/llm-evaluator/api/store"
)

// ModelService manages model identities and keeps them synchronized with
// the generation gateway's advertised model list.
type ModelService struct {
	store *store.Store
	gen   gateway.Generator
}

func NewModelService(s *store.Store, gen gateway.Generator) *ModelService {
	return &ModelService{store: s, gen: gen}
}

// Create registers a model explicitly. Fails with domain.ErrConflict when
// the name is already taken.
func (svc *ModelService) Create(ctx context.Context, name string, description *string) (*domain.Model, error) {
	m := &domain.Model{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.store.CreateModel(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get retrieves a model by ID.
func (svc *ModelService) Get(ctx context.Context, id int64) (*domain.Model, error) {
	return svc.store.GetModel(ctx, id)
}

// List retrieves models with pagination.
func (svc *ModelService) List(ctx context.Context, limit, offset int) ([]*domain.Model, error) {
	return svc.store.ListModels(ctx, limit, offset)
}

// Sync reads the gateway's advertised models and inserts any name not yet
// present. The gateway is the source of truth and the store a cache, but
// sync only ever adds: existing rows are never removed or renamed. Returns
// the number of models added.
func (svc *ModelService) Sync(ctx context.Context) (int, error) {
	advertised, err := svc.gen.ListAvailableModels(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, info := range advertised {
		inserted, err := svc.store.UpsertModelName(ctx, info.Name, info.Description)
		if err != nil {
			return added, err
		}
		if inserted {
			added++
			slog.Info("synchronized new model from gateway", "name", info.Name)
		}
	}
	return added, nil
}
