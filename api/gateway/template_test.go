package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRender_Substitution(t *testing.T) {
	prompt, system := Render("Summarize: {{input}}", "hello world", nil)
	assert.Equal(t, "Summarize: hello world", prompt)
	assert.Equal(t, "", system)
}

func TestRender_SubstitutesEveryOccurrence(t *testing.T) {
	prompt, _ := Render("{{input}} and again {{input}}", "x", nil)
	assert.Equal(t, "x and again x", prompt)
}

func TestRender_NoPlaceholder(t *testing.T) {
	prompt, system := Render("no placeholder here", "ignored", nil)
	assert.Equal(t, "no placeholder here", prompt)
	assert.Equal(t, "", system)
}

func TestRender_StoredSystemPromptWins(t *testing.T) {
	// Inline markers must not be parsed when a system prompt is stored.
	template := "System: inline instructions\nPrompt: {{input}}"
	prompt, system := Render(template, "text", strPtr("stored instructions"))
	assert.Equal(t, "stored instructions", system)
	assert.Equal(t, "System: inline instructions\nPrompt: text", prompt)
}

func TestRender_EmptyStoredSystemPrompt(t *testing.T) {
	// An empty stored system prompt still counts as stored.
	template := "System: inline\nPrompt: {{input}}"
	prompt, system := Render(template, "text", strPtr(""))
	assert.Equal(t, "", system)
	assert.Equal(t, "System: inline\nPrompt: text", prompt)
}

func TestRender_InlineMarkers(t *testing.T) {
	template := "System: be terse\nPrompt: summarize {{input}}"
	prompt, system := Render(template, "the text", nil)
	assert.Equal(t, "be terse", system)
	assert.Equal(t, "summarize the text", prompt)
}

func TestRender_SystemMarkerWithoutPromptMarker(t *testing.T) {
	// Without a Prompt: marker the whole text is the user prompt.
	prompt, system := Render("System: be terse {{input}}", "x", nil)
	assert.Equal(t, "System: be terse x", prompt)
	assert.Equal(t, "", system)
}

func TestRender_MarkerNotAtStart(t *testing.T) {
	prompt, system := Render("text before System: x Prompt: y", "ignored", nil)
	assert.Equal(t, "text before System: x Prompt: y", prompt)
	assert.Equal(t, "", system)
}

func TestRender_SubstitutionBeforeMarkerParsing(t *testing.T) {
	// Input text containing markers participates in parsing because
	// substitution runs first.
	prompt, system := Render("{{input}}", "System: a\nPrompt: b", nil)
	assert.Equal(t, "a", system)
	assert.Equal(t, "b", prompt)
}
