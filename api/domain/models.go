package domain

import "time"

type InputSet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Input struct {
	ID         int64     `json:"id"`
	InputSetID *int64    `json:"input_set_id,omitempty"`
	Name       *string   `json:"name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type Model struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Prompt struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PromptVersion is an immutable template snapshot within a prompt.
// Version numbers are strictly increasing per prompt, starting at 1,
// and are never reused.
type PromptVersion struct {
	ID            int64      `json:"id"`
	PromptID      int64      `json:"prompt_id"`
	VersionNumber int        `json:"version_number"`
	Template      string     `json:"template"`
	SystemPrompt  *string    `json:"system_prompt,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"-"`
}

// Output is the immutable result of running one (input, prompt version,
// model) combination through the generation gateway. At most one output
// exists per combination; re-comparisons reuse it.
type Output struct {
	ID              int64     `json:"id"`
	InputID         int64     `json:"input_id"`
	ModelID         int64     `json:"model_id"`
	PromptID        int64     `json:"prompt_id"`
	PromptVersionID int64     `json:"prompt_version_id"`
	Text            string    `json:"text"`
	ProcessingTime  float64   `json:"processing_time"` // seconds
	CreatedAt       time.Time `json:"created_at"`
}

// Evaluation is a human quality judgment on one output. At most one
// exists per output; a second submission overwrites the first.
type Evaluation struct {
	ID        int64     `json:"id"`
	OutputID  int64     `json:"output_id"`
	Quality   Quality   `json:"quality"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Quality is the closed three-value rating scale for evaluations.
type Quality string

const (
	QualityBad  Quality = "bad"
	QualityOK   Quality = "ok"
	QualityGood Quality = "good"
)

// Valid reports whether q is one of the recognized quality values.
func (q Quality) Valid() bool {
	switch q {
	case QualityBad, QualityOK, QualityGood:
		return true
	}
	return false
}
