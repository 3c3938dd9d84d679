package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

func TestHistory_MissingInputIsNotAnError(t *testing.T) {
	svc := NewHistoryService(newMockStore())

	history, err := svc.History(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, history.Found)
	assert.Nil(t, history.Input)
	assert.NotNil(t, history.Entries)
	assert.Empty(t, history.Entries)
}

func TestHistory_EmptyForInputWithoutOutputs(t *testing.T) {
	store := newMockStore()
	svc := NewHistoryService(store)

	store.addInput(1, "lonely")

	history, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, history.Found)
	require.NotNil(t, history.Input)
	assert.Equal(t, "lonely", history.Input.Text)
	assert.Empty(t, history.Entries)
}

func TestHistory_JoinsEvaluations(t *testing.T) {
	store := newMockStore()
	svc := NewHistoryService(store)
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "summarize")
	store.addVersion(100, 10, 2, "v2 template", nil)
	store.addModel(20, "llama2")

	evaluated := &domain.Output{InputID: 1, ModelID: 20, PromptID: 10, PromptVersionID: 100, Text: "good one", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOutput(ctx, evaluated))
	unevaluated := &domain.Output{InputID: 1, ModelID: 20, PromptID: 10, PromptVersionID: 100, Text: "other", CreatedAt: time.Now()}
	require.NoError(t, store.CreateOutput(ctx, unevaluated))

	require.NoError(t, store.UpsertEvaluation(ctx, &domain.Evaluation{OutputID: evaluated.ID, Quality: domain.QualityGood}))

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	assert.True(t, history.Found)
	require.Len(t, history.Entries, 2)

	byOutput := make(map[int64]*domain.HistoryEntry)
	for _, entry := range history.Entries {
		byOutput[entry.Output.ID] = entry
		assert.Equal(t, "summarize", entry.PromptName)
		assert.Equal(t, 2, entry.VersionNumber)
		assert.Equal(t, "v2 template", entry.Template)
		assert.Equal(t, "llama2", entry.ModelName)
	}

	require.NotNil(t, byOutput[evaluated.ID].Evaluation)
	assert.Equal(t, domain.QualityGood, byOutput[evaluated.ID].Evaluation.Quality)
	// Unevaluated outputs appear with a null evaluation, not omitted.
	assert.Nil(t, byOutput[unevaluated.ID].Evaluation)
}
