package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

func TestEvaluationUpsert(t *testing.T) {
	store := newMockStore()
	svc := NewEvaluationService(store)
	ctx := context.Background()

	out := &domain.Output{InputID: 1, ModelID: 2, PromptID: 3, PromptVersionID: 4, Text: "x", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOutput(ctx, out))

	eval, err := svc.Upsert(ctx, out.ID, domain.QualityGood, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.QualityGood, eval.Quality)
	assert.Equal(t, out.ID, eval.OutputID)
}

func TestEvaluationUpsert_OverwritesExisting(t *testing.T) {
	store := newMockStore()
	svc := NewEvaluationService(store)
	ctx := context.Background()

	out := &domain.Output{Text: "x", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOutput(ctx, out))

	notes := "promising"
	first, err := svc.Upsert(ctx, out.ID, domain.QualityOK, &notes)
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, out.ID, domain.QualityBad, nil)
	require.NoError(t, err)

	// Same evaluation row, judgment replaced.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.QualityBad, second.Quality)
	assert.Nil(t, second.Notes)

	stored, err := svc.GetByOutput(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QualityBad, stored.Quality)
}

func TestEvaluationUpsert_InvalidQuality(t *testing.T) {
	store := newMockStore()
	svc := NewEvaluationService(store)
	ctx := context.Background()

	out := &domain.Output{Text: "x", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOutput(ctx, out))

	_, err := svc.Upsert(ctx, out.ID, domain.Quality("excellent"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Upsert(ctx, out.ID, domain.Quality(""), nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestEvaluationUpsert_MissingOutput(t *testing.T) {
	svc := NewEvaluationService(newMockStore())

	_, err := svc.Upsert(context.Background(), 404, domain.QualityGood, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
