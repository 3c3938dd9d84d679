package services

import (
	"context"
	"time"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// EvaluationStore is the slice of the store the recorder needs.
type EvaluationStore interface {
	GetOutput(ctx context.Context, id int64) (*domain.Output, error)
	UpsertEvaluation(ctx context.Context, e *domain.Evaluation) error
	GetEvaluationByOutput(ctx context.Context, outputID int64) (*domain.Evaluation, error)
	ListEvaluations(ctx context.Context, limit, offset int) ([]*domain.EvaluationDetail, error)
}

// EvaluationService records human quality judgments, one per output.
type EvaluationService struct {
	store EvaluationStore
}

func NewEvaluationService(s EvaluationStore) *EvaluationService {
	return &EvaluationService{store: s}
}

// Upsert records the evaluation for an output. A second call for the same
// output overwrites quality and notes in place; there is never more than
// one evaluation per output. Fails with domain.ErrInvalid on an
// unrecognized quality and domain.ErrNotFound when the output is missing.
func (svc *EvaluationService) Upsert(ctx context.Context, outputID int64, quality domain.Quality, notes *string) (*domain.Evaluation, error) {
	if !quality.Valid() {
		return nil, domain.ErrInvalid
	}
	if _, err := svc.store.GetOutput(ctx, outputID); err != nil {
		return nil, err
	}

	eval := &domain.Evaluation{
		OutputID:  outputID,
		Quality:   quality,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.store.UpsertEvaluation(ctx, eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// GetByOutput retrieves the evaluation attached to an output.
func (svc *EvaluationService) GetByOutput(ctx context.Context, outputID int64) (*domain.Evaluation, error) {
	return svc.store.GetEvaluationByOutput(ctx, outputID)
}

// List retrieves evaluations with their joined context, newest first.
func (svc *EvaluationService) List(ctx context.Context, limit, offset int) ([]*domain.EvaluationDetail, error) {
	return svc.store.ListEvaluations(ctx, limit, offset)
}
