package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// FindOutput performs an exact-match lookup on all four combination keys.
// A different version ID is a miss even if its template text is identical.
func (s *Store) FindOutput(ctx context.Context, inputID, promptID, versionID, modelID int64) (*domain.Output, error) {
	query := `
		SELECT id, input_id, model_id, prompt_id, prompt_version_id, text, processing_time, created_at
		FROM outputs
		WHERE input_id = $1 AND prompt_id = $2 AND prompt_version_id = $3 AND model_id = $4`

	out := &domain.Output{}
	err := s.conn(ctx).QueryRow(ctx, query, inputID, promptID, versionID, modelID).Scan(
		&out.ID, &out.InputID, &out.ModelID, &out.PromptID, &out.PromptVersionID,
		&out.Text, &out.ProcessingTime, &out.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("find output", err)
	}
	return out, nil
}

// CreateOutput appends an immutable output row. The combination key is
// unique; when a concurrent writer got there first, the insert is a no-op
// and the winner's row is loaded back into out, so both callers end up
// holding the same persisted output.
func (s *Store) CreateOutput(ctx context.Context, out *domain.Output) error {
	query := `
		INSERT INTO outputs (input_id, model_id, prompt_id, prompt_version_id, text, processing_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (input_id, model_id, prompt_id, prompt_version_id) DO NOTHING
		RETURNING id, created_at`

	err := s.conn(ctx).QueryRow(ctx, query,
		out.InputID, out.ModelID, out.PromptID, out.PromptVersionID,
		out.Text, out.ProcessingTime, out.CreatedAt,
	).Scan(&out.ID, &out.CreatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create output: %w", err)
	}

	existing, err := s.FindOutput(ctx, out.InputID, out.PromptID, out.PromptVersionID, out.ModelID)
	if err != nil {
		return fmt.Errorf("create output: load winning row: %w", err)
	}
	*out = *existing
	return nil
}

// GetOutput retrieves an output by ID.
func (s *Store) GetOutput(ctx context.Context, id int64) (*domain.Output, error) {
	query := `
		SELECT id, input_id, model_id, prompt_id, prompt_version_id, text, processing_time, created_at
		FROM outputs
		WHERE id = $1`

	out := &domain.Output{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(
		&out.ID, &out.InputID, &out.ModelID, &out.PromptID, &out.PromptVersionID,
		&out.Text, &out.ProcessingTime, &out.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get output", err)
	}
	return out, nil
}

// ListOutputsForInput returns an input's outputs ordered by creation time,
// most recent first.
func (s *Store) ListOutputsForInput(ctx context.Context, inputID int64) ([]*domain.Output, error) {
	query := `
		SELECT id, input_id, model_id, prompt_id, prompt_version_id, text, processing_time, created_at
		FROM outputs
		WHERE input_id = $1
		ORDER BY created_at DESC`

	rows, err := s.conn(ctx).Query(ctx, query, inputID)
	if err != nil {
		return nil, fmt.Errorf("list outputs for input: %w", err)
	}
	defer rows.Close()

	var outputs []*domain.Output
	for rows.Next() {
		out := &domain.Output{}
		if err := rows.Scan(
			&out.ID, &out.InputID, &out.ModelID, &out.PromptID, &out.PromptVersionID,
			&out.Text, &out.ProcessingTime, &out.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		outputs = append(outputs, out)
	}
	return outputs, rows.Err()
}

// ListInputHistory returns an input's outputs newest first, each joined
// with its prompt name, version, model name and evaluation if one exists.
// Soft-deleted versions still appear: the outputs generated from them are
// part of the record.
func (s *Store) ListInputHistory(ctx context.Context, inputID int64) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT o.id, o.input_id, o.model_id, o.prompt_id, o.prompt_version_id,
		       o.text, o.processing_time, o.created_at,
		       p.name, pv.version_number, pv.template, m.name,
		       e.id, e.quality, e.notes, e.created_at
		FROM outputs o
		JOIN prompts p ON p.id = o.prompt_id
		JOIN prompt_versions pv ON pv.id = o.prompt_version_id
		JOIN models m ON m.id = o.model_id
		LEFT JOIN evaluations e ON e.output_id = o.id
		WHERE o.input_id = $1
		ORDER BY o.created_at DESC`

	rows, err := s.conn(ctx).Query(ctx, query, inputID)
	if err != nil {
		return nil, fmt.Errorf("list input history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		entry := &domain.HistoryEntry{}
		var evalID *int64
		var evalQuality *string
		var evalNotes *string
		var evalCreatedAt *time.Time

		if err := rows.Scan(
			&entry.Output.ID, &entry.Output.InputID, &entry.Output.ModelID,
			&entry.Output.PromptID, &entry.Output.PromptVersionID,
			&entry.Output.Text, &entry.Output.ProcessingTime, &entry.Output.CreatedAt,
			&entry.PromptName, &entry.VersionNumber, &entry.Template, &entry.ModelName,
			&evalID, &evalQuality, &evalNotes, &evalCreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}

		if evalID != nil {
			entry.Evaluation = &domain.Evaluation{
				ID:        *evalID,
				OutputID:  entry.Output.ID,
				Quality:   domain.Quality(*evalQuality),
				Notes:     evalNotes,
				CreatedAt: *evalCreatedAt,
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
