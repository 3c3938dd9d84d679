package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// CreateInput inserts a new input and fills in the generated ID.
func (s *Store) CreateInput(ctx context.Context, in *domain.Input) error {
	query := `
		INSERT INTO inputs (input_set_id, name, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := s.conn(ctx).QueryRow(ctx, query, in.InputSetID, in.Name, in.Text, in.CreatedAt).Scan(&in.ID)
	if err != nil {
		return fmt.Errorf("create input: %w", err)
	}
	return nil
}

// GetInput retrieves an input by ID.
func (s *Store) GetInput(ctx context.Context, id int64) (*domain.Input, error) {
	query := `
		SELECT id, input_set_id, name, text, created_at
		FROM inputs
		WHERE id = $1`

	in := &domain.Input{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(&in.ID, &in.InputSetID, &in.Name, &in.Text, &in.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get input", err)
	}
	return in, nil
}

// ListInputs returns inputs ordered by creation time, newest first.
func (s *Store) ListInputs(ctx context.Context, limit, offset int) ([]*domain.Input, error) {
	query := `
		SELECT id, input_set_id, name, text, created_at
		FROM inputs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()

	return scanInputs(rows)
}

// ListInputsBySet returns the inputs belonging to one input set.
func (s *Store) ListInputsBySet(ctx context.Context, inputSetID int64, limit, offset int) ([]*domain.Input, error) {
	query := `
		SELECT id, input_set_id, name, text, created_at
		FROM inputs
		WHERE input_set_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn(ctx).Query(ctx, query, inputSetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inputs by set: %w", err)
	}
	defer rows.Close()

	return scanInputs(rows)
}

// UpdateInput updates an input's name and text.
func (s *Store) UpdateInput(ctx context.Context, in *domain.Input) error {
	query := `UPDATE inputs SET name = $2, text = $3 WHERE id = $1`

	result, err := s.conn(ctx).Exec(ctx, query, in.ID, in.Name, in.Text)
	if err != nil {
		return fmt.Errorf("update input: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteInput deletes an input. Dependent outputs and evaluations cascade.
func (s *Store) DeleteInput(ctx context.Context, id int64) error {
	result, err := s.conn(ctx).Exec(ctx, `DELETE FROM inputs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete input: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInputs(rows pgx.Rows) ([]*domain.Input, error) {
	var inputs []*domain.Input
	for rows.Next() {
		in := &domain.Input{}
		if err := rows.Scan(&in.ID, &in.InputSetID, &in.Name, &in.Text, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		inputs = append(inputs, in)
	}
	return inputs, rows.Err()
}
