package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

func TestStubGateway_Generate(t *testing.T) {
	g := &StubGateway{}

	result, err := g.Generate(context.Background(), "llama2", "some prompt", "")
	require.NoError(t, err)
	assert.Contains(t, result.Text, "llama2")
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestStubGateway_Deterministic(t *testing.T) {
	g := &StubGateway{}

	a, err := g.Generate(context.Background(), "mistral", "prompt", "sys")
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), "mistral", "prompt", "sys")
	require.NoError(t, err)
	assert.Equal(t, a.Text, b.Text)
}

func TestStubGateway_UnknownModel(t *testing.T) {
	g := &StubGateway{}

	_, err := g.Generate(context.Background(), "no-such-model", "prompt", "")
	require.Error(t, err)

	var genErr *domain.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "no-such-model", genErr.ModelName)
}

func TestStubGateway_ListAvailableModels(t *testing.T) {
	g := &StubGateway{}

	models, err := g.ListAvailableModels(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, models)

	names := make(map[string]bool)
	for _, m := range models {
		names[m.Name] = true
	}
	assert.True(t, names["gpt4all"])
	assert.True(t, names["llama2"])
	assert.True(t, names["mistral"])
}
