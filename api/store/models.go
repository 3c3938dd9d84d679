package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// CreateModel inserts a new model. Model names are unique across the
// system; a duplicate name yields domain.ErrConflict.
func (s *Store) CreateModel(ctx context.Context, m *domain.Model) error {
	query := `
		INSERT INTO models (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := s.conn(ctx).QueryRow(ctx, query, m.Name, m.Description, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create model: %w", err)
	}
	return nil
}

// UpsertModelName inserts a model row for name if none exists and reports
// whether a row was inserted. Existing rows are left untouched: the gateway
// is the source of truth for which models exist, but the store never drops
// or renames what it already has.
func (s *Store) UpsertModelName(ctx context.Context, name string, description *string) (bool, error) {
	query := `
		INSERT INTO models (name, description, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO NOTHING`

	result, err := s.conn(ctx).Exec(ctx, query, name, description)
	if err != nil {
		return false, fmt.Errorf("upsert model name: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// GetModel retrieves a model by ID.
func (s *Store) GetModel(ctx context.Context, id int64) (*domain.Model, error) {
	query := `
		SELECT id, name, description, created_at
		FROM models
		WHERE id = $1`

	m := &domain.Model{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get model", err)
	}
	return m, nil
}

// ListModels returns all models ordered by name.
func (s *Store) ListModels(ctx context.Context, limit, offset int) ([]*domain.Model, error) {
	query := `
		SELECT id, name, description, created_at
		FROM models
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	return scanModels(rows)
}

func scanModels(rows pgx.Rows) ([]*domain.Model, error) {
	var models []*domain.Model
	for rows.Next() {
		m := &domain.Model{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}
