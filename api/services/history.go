package services

import (
	"context"
	"errors"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// HistoryStore is the slice of the store the reconstructor needs.
type HistoryStore interface {
	GetInput(ctx context.Context, id int64) (*domain.Input, error)
	ListInputHistory(ctx context.Context, inputID int64) ([]*domain.HistoryEntry, error)
}

// InputHistory is the time-ordered record of everything generated for one
// input. Found is false when the input does not exist; that is not an
// error, the history is simply empty.
type InputHistory struct {
	Found   bool                   `json:"found"`
	Input   *domain.Input          `json:"input,omitempty"`
	Entries []*domain.HistoryEntry `json:"entries"`
}

// HistoryService reconstructs per-input history joined with evaluations.
// Read-only composition over the output ledger and evaluation recorder.
type HistoryService struct {
	store HistoryStore
}

func NewHistoryService(s HistoryStore) *HistoryService {
	return &HistoryService{store: s}
}

// History returns an input's outputs newest first, each enriched with the
// prompt name, version number and template, model name, and the single
// evaluation if one exists. Outputs without an evaluation are listed with
// a null evaluation, not omitted.
func (svc *HistoryService) History(ctx context.Context, inputID int64) (*InputHistory, error) {
	input, err := svc.store.GetInput(ctx, inputID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &InputHistory{Found: false, Entries: []*domain.HistoryEntry{}}, nil
		}
		return nil, err
	}

	entries, err := svc.store.ListInputHistory(ctx, inputID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.HistoryEntry{}
	}

	return &InputHistory{Found: true, Input: input, Entries: entries}, nil
}
