package store

import (
	"context"
	"fmt"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// UpsertEvaluation creates the evaluation for an output, or overwrites the
// quality and notes of the existing one. The UNIQUE constraint on output_id
// keeps it at one evaluation per output no matter how often this runs.
func (s *Store) UpsertEvaluation(ctx context.Context, e *domain.Evaluation) error {
	query := `
		INSERT INTO evaluations (output_id, quality, notes, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (output_id) DO UPDATE SET
			quality = EXCLUDED.quality,
			notes = EXCLUDED.notes
		RETURNING id, created_at`

	err := s.conn(ctx).QueryRow(ctx, query, e.OutputID, e.Quality, e.Notes, e.CreatedAt).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert evaluation: %w", err)
	}
	return nil
}

// GetEvaluationByOutput retrieves the evaluation attached to an output.
func (s *Store) GetEvaluationByOutput(ctx context.Context, outputID int64) (*domain.Evaluation, error) {
	query := `
		SELECT id, output_id, quality, notes, created_at
		FROM evaluations
		WHERE output_id = $1`

	e := &domain.Evaluation{}
	err := s.conn(ctx).QueryRow(ctx, query, outputID).Scan(&e.ID, &e.OutputID, &e.Quality, &e.Notes, &e.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get evaluation by output", err)
	}
	return e, nil
}

// ListEvaluations returns evaluations newest first, each with the output,
// input, model and prompt context a reviewer needs to read it.
func (s *Store) ListEvaluations(ctx context.Context, limit, offset int) ([]*domain.EvaluationDetail, error) {
	query := `
		SELECT e.id, e.output_id, e.quality, e.notes, e.created_at,
		       o.text, o.processing_time,
		       i.id, i.text,
		       m.id, m.name,
		       p.id, p.name
		FROM evaluations e
		JOIN outputs o ON o.id = e.output_id
		JOIN inputs i ON i.id = o.input_id
		JOIN models m ON m.id = o.model_id
		JOIN prompts p ON p.id = o.prompt_id
		ORDER BY e.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var details []*domain.EvaluationDetail
	for rows.Next() {
		d := &domain.EvaluationDetail{}
		if err := rows.Scan(
			&d.Evaluation.ID, &d.Evaluation.OutputID, &d.Evaluation.Quality,
			&d.Evaluation.Notes, &d.Evaluation.CreatedAt,
			&d.OutputText, &d.ProcessingTime,
			&d.InputID, &d.InputText,
			&d.ModelID, &d.ModelName,
			&d.PromptID, &d.PromptName); err != nil {
			return nil, fmt.Errorf("scan evaluation detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
