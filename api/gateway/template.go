package gateway

import "strings"

// Placeholder is the literal marker in templates that gets replaced with
// the input text.
const Placeholder = "{{input}}"

const (
	systemMarker = "System:"
	promptMarker = "Prompt:"
)

// Render substitutes the input text into a version's template and decides
// the system prompt. A system prompt stored on the version wins; inline
// System:/Prompt: markers are only parsed for older templates that carry
// no stored system prompt. Substitution happens before marker parsing,
// matching how templates have always been rendered.
func Render(template, inputText string, storedSystemPrompt *string) (prompt, systemPrompt string) {
	prompt = strings.ReplaceAll(template, Placeholder, inputText)

	if storedSystemPrompt != nil {
		return prompt, *storedSystemPrompt
	}

	if !strings.HasPrefix(prompt, systemMarker) {
		return prompt, ""
	}
	systemPart, promptPart, found := strings.Cut(prompt, promptMarker)
	if !found {
		return prompt, ""
	}

	systemPrompt = strings.TrimSpace(strings.TrimPrefix(systemPart, systemMarker))
	prompt = strings.TrimSpace(promptPart)
	return prompt, systemPrompt
}
