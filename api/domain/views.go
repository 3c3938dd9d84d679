package domain

// HistoryEntry is one output of an input enriched with the names and
// version details behind it. Evaluation is nil when nobody has rated the
// output yet; the entry is still listed.
type HistoryEntry struct {
	Output        Output      `json:"output"`
	PromptName    string      `json:"prompt_name"`
	VersionNumber int         `json:"version_number"`
	Template      string      `json:"template"`
	ModelName     string      `json:"model_name"`
	Evaluation    *Evaluation `json:"evaluation"`
}

// EvaluationDetail is an evaluation joined with the output it rates and
// the input, model and prompt behind that output.
type EvaluationDetail struct {
	Evaluation     Evaluation `json:"evaluation"`
	OutputText     string     `json:"output_text"`
	ProcessingTime float64    `json:"processing_time"`
	InputID        int64      `json:"input_id"`
	InputText      string     `json:"input_text"`
	ModelID        int64      `json:"model_id"`
	ModelName      string     `json:"model_name"`
	PromptID       int64      `json:"prompt_id"`
	PromptName     string     `json:"prompt_name"`
}
