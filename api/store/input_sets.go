package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// CreateInputSet inserts a new input set and fills in the generated ID.
func (s *Store) CreateInputSet(ctx context.Context, set *domain.InputSet) error {
	query := `
		INSERT INTO input_sets (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := s.conn(ctx).QueryRow(ctx, query, set.Name, set.Description, set.CreatedAt).Scan(&set.ID)
	if err != nil {
		return fmt.Errorf("create input set: %w", err)
	}
	return nil
}

// GetInputSet retrieves an input set by ID.
func (s *Store) GetInputSet(ctx context.Context, id int64) (*domain.InputSet, error) {
	query := `
		SELECT id, name, description, created_at
		FROM input_sets
		WHERE id = $1`

	set := &domain.InputSet{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(&set.ID, &set.Name, &set.Description, &set.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get input set", err)
	}
	return set, nil
}

// ListInputSets returns input sets ordered by creation time, newest first.
func (s *Store) ListInputSets(ctx context.Context, limit, offset int) ([]*domain.InputSet, error) {
	query := `
		SELECT id, name, description, created_at
		FROM input_sets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list input sets: %w", err)
	}
	defer rows.Close()

	return scanInputSets(rows)
}

// UpdateInputSet updates an input set's name and description.
func (s *Store) UpdateInputSet(ctx context.Context, set *domain.InputSet) error {
	query := `UPDATE input_sets SET name = $2, description = $3 WHERE id = $1`

	result, err := s.conn(ctx).Exec(ctx, query, set.ID, set.Name, set.Description)
	if err != nil {
		return fmt.Errorf("update input set: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteInputSet deletes an input set. Member inputs, their outputs and any
// evaluations on those outputs go with it via cascading foreign keys.
func (s *Store) DeleteInputSet(ctx context.Context, id int64) error {
	result, err := s.conn(ctx).Exec(ctx, `DELETE FROM input_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete input set: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInputSets(rows pgx.Rows) ([]*domain.InputSet, error) {
	var sets []*domain.InputSet
	for rows.Next() {
		set := &domain.InputSet{}
		if err := rows.Scan(&set.ID, &set.Name, &set.Description, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan input set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}
