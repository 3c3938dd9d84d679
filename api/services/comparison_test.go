package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComparisonFixture() (*mockStore, *mockGenerator, *ComparisonService) {
	store := newMockStore()
	gen := newMockGenerator()
	svc := NewComparisonService(store, store, gen)
	return store, gen, svc
}

func TestCompare_GeneratesAllCombinations(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "first text")
	store.addInput(2, "second text")
	store.addPrompt(10, "summarize")
	store.addVersion(100, 10, 1, "Summarize: {{input}}", nil)
	store.addModel(20, "llama2")
	store.addModel(21, "mistral")

	groups, err := svc.Compare(ctx, []int64{1, 2}, []int64{10}, []int64{20, 21}, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	for _, group := range groups {
		require.Len(t, group.Results, 2)
		for _, result := range group.Results {
			assert.False(t, result.FromCache)
			assert.NotNil(t, result.Output)
			assert.Equal(t, "summarize", result.PromptName)
			assert.Equal(t, 1, result.VersionNumber)
		}
	}

	// 2 inputs x 1 prompt x 2 models
	assert.Equal(t, 4, gen.callCount())
	assert.Equal(t, 4, store.outputCount())
}

func TestCompare_SecondRunServedFromCache(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "llama2")

	first, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)
	require.Len(t, first[0].Results, 1)
	assert.False(t, first[0].Results[0].FromCache)

	second, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)
	require.Len(t, second[0].Results, 1)
	assert.True(t, second[0].Results[0].FromCache)
	assert.Equal(t, first[0].Results[0].Output.ID, second[0].Results[0].Output.ID)

	// No second generation, no second output row.
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, 1, store.outputCount())
}

func TestCompare_NewVersionMissesCache(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "v1: {{input}}", nil)
	store.addModel(20, "llama2")

	_, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)

	// Same template text under a new version id still regenerates.
	store.addVersion(101, 10, 2, "v1: {{input}}", nil)

	groups, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)
	assert.False(t, groups[0].Results[0].FromCache)
	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, 2, store.outputCount())
}

func TestCompare_VersionOverride(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "old: {{input}}", nil)
	store.addVersion(101, 10, 2, "new: {{input}}", nil)
	store.addModel(20, "llama2")

	groups, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, map[int64]int64{10: 100})
	require.NoError(t, err)
	require.Len(t, groups[0].Results, 1)

	result := groups[0].Results[0]
	assert.Equal(t, int64(100), result.PromptVersionID)
	assert.Equal(t, 1, result.VersionNumber)
	assert.Equal(t, "old: text", gen.calls[0].Prompt)
}

func TestCompare_OverrideFromOtherPromptSkips(t *testing.T) {
	store, _, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addPrompt(11, "other")
	store.addVersion(110, 11, 1, "{{input}}", nil)
	store.addModel(20, "llama2")

	// Version 110 belongs to prompt 11, not 10.
	groups, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, map[int64]int64{10: 110})
	require.NoError(t, err)
	assert.Empty(t, groups[0].Results)
}

func TestCompare_MissingInputYieldsEmptyGroup(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "exists")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "llama2")

	groups, err := svc.Compare(ctx, []int64{99, 1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, int64(99), groups[0].InputID)
	assert.Nil(t, groups[0].Input)
	assert.Empty(t, groups[0].Results)

	assert.Equal(t, int64(1), groups[1].InputID)
	assert.Len(t, groups[1].Results, 1)
	assert.Equal(t, 1, gen.callCount())
}

func TestCompare_MissingModelSkipped(t *testing.T) {
	store, _, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "llama2")

	groups, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20, 99}, nil)
	require.NoError(t, err)
	require.Len(t, groups[0].Results, 1)
	assert.Equal(t, int64(20), groups[0].Results[0].ModelID)
}

func TestCompare_GenerationFailureSkipsCombination(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "broken")
	store.addModel(21, "working")
	gen.failModels["broken"] = true

	groups, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20, 21}, nil)
	require.NoError(t, err)
	require.Len(t, groups[0].Results, 1)
	assert.Equal(t, "working", groups[0].Results[0].ModelName)

	// The failed combination left no output behind.
	assert.Equal(t, 1, store.outputCount())
}

func TestCompare_ResultOrderFollowsRequest(t *testing.T) {
	store, _, svc := newComparisonFixture()
	ctx := context.Background()

	store.addInput(1, "text")
	store.addPrompt(10, "a")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addPrompt(11, "b")
	store.addVersion(110, 11, 1, "{{input}}", nil)
	store.addModel(20, "m1")
	store.addModel(21, "m2")

	groups, err := svc.Compare(ctx, []int64{1}, []int64{11, 10}, []int64{21, 20}, nil)
	require.NoError(t, err)
	require.Len(t, groups[0].Results, 4)

	got := make([][2]int64, 0, 4)
	for _, result := range groups[0].Results {
		got = append(got, [2]int64{result.PromptID, result.ModelID})
	}
	want := [][2]int64{{11, 21}, {11, 20}, {10, 21}, {10, 20}}
	assert.Equal(t, want, got)
}

func TestCompare_SystemPromptReachesGenerator(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	system := "be terse"
	store.addInput(1, "text")
	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", &system)
	store.addModel(20, "llama2")

	_, err := svc.Compare(ctx, []int64{1}, []int64{10}, []int64{20}, nil)
	require.NoError(t, err)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "be terse", gen.calls[0].SystemPrompt)
}

func TestBatchProcess_AlwaysGeneratesFreshOutputs(t *testing.T) {
	store, gen, svc := newComparisonFixture()
	ctx := context.Background()

	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "llama2")

	first, err := svc.BatchProcess(ctx, []string{"same text"}, []int64{20}, []int64{10}, nil)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Len(t, first[0].Results, 1)

	// Resubmitting identical text creates a new input and regenerates.
	second, err := svc.BatchProcess(ctx, []string{"same text"}, []int64{20}, []int64{10}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first[0].InputID, second[0].InputID)
	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, 2, store.outputCount())
}

func TestBatchProcess_OnePerText(t *testing.T) {
	store, _, svc := newComparisonFixture()
	ctx := context.Background()

	store.addPrompt(10, "p")
	store.addVersion(100, 10, 1, "{{input}}", nil)
	store.addModel(20, "llama2")
	store.addModel(21, "mistral")

	results, err := svc.BatchProcess(ctx, []string{"a", "b", "a"}, []int64{20, 21}, []int64{10}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, batch := range results {
		assert.Len(t, batch.Results, 2)
	}
	// Duplicate texts each got their own input.
	assert.Equal(t, 6, store.outputCount())
}
