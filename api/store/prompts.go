package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// CreatePrompt inserts a new prompt family and fills in the generated ID.
// The prompt itself carries no template text; that lives on its versions.
func (s *Store) CreatePrompt(ctx context.Context, p *domain.Prompt) error {
	query := `
		INSERT INTO prompts (name, description, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := s.conn(ctx).QueryRow(ctx, query, p.Name, p.Description, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create prompt: %w", err)
	}
	return nil
}

// GetPrompt retrieves a prompt by ID.
func (s *Store) GetPrompt(ctx context.Context, id int64) (*domain.Prompt, error) {
	query := `
		SELECT id, name, description, created_at
		FROM prompts
		WHERE id = $1`

	p := &domain.Prompt{}
	err := s.conn(ctx).QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, WrapNotFound("get prompt", err)
	}
	return p, nil
}

// ListPrompts returns prompts ordered by creation time, newest first.
func (s *Store) ListPrompts(ctx context.Context, limit, offset int) ([]*domain.Prompt, error) {
	query := `
		SELECT id, name, description, created_at
		FROM prompts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*domain.Prompt
	for rows.Next() {
		p := &domain.Prompt{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// UpdatePrompt updates a prompt's name and description. Versions are
// immutable and unaffected.
func (s *Store) UpdatePrompt(ctx context.Context, p *domain.Prompt) error {
	query := `UPDATE prompts SET name = $2, description = $3 WHERE id = $1`

	result, err := s.conn(ctx).Exec(ctx, query, p.ID, p.Name, p.Description)
	if err != nil {
		return fmt.Errorf("update prompt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeletePrompt deletes a prompt. Its versions, outputs produced from them
// and evaluations on those outputs cascade.
func (s *Store) DeletePrompt(ctx context.Context, id int64) error {
	result, err := s.conn(ctx).Exec(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreatePromptVersion inserts a new version with the next version number.
// The MAX subquery deliberately includes soft-deleted versions so that
// numbers are strictly increasing and never reused, even after the current
// maximum is deleted.
func (s *Store) CreatePromptVersion(ctx context.Context, v *domain.PromptVersion) error {
	query := `
		INSERT INTO prompt_versions (prompt_id, version_number, template, system_prompt, created_at)
		VALUES ($1,
			COALESCE((
				SELECT MAX(version_number) + 1
				FROM prompt_versions
				WHERE prompt_id = $5
			), 1),
			$2, $3, $4)
		RETURNING id, version_number`

	err := s.conn(ctx).QueryRow(ctx, query,
		v.PromptID, v.Template, v.SystemPrompt, v.CreatedAt,
		v.PromptID, // $5 - duplicate for subquery
	).Scan(&v.ID, &v.VersionNumber)
	if err != nil {
		return fmt.Errorf("create prompt version: %w", err)
	}
	return nil
}

// GetPromptVersion retrieves a version by ID.
func (s *Store) GetPromptVersion(ctx context.Context, id int64) (*domain.PromptVersion, error) {
	query := `
		SELECT id, prompt_id, version_number, template, system_prompt, created_at
		FROM prompt_versions
		WHERE id = $1 AND deleted_at IS NULL`

	return s.scanVersionRow(s.conn(ctx).QueryRow(ctx, query, id), "get prompt version")
}

// GetLatestPromptVersion retrieves the version with the highest number for
// a prompt.
func (s *Store) GetLatestPromptVersion(ctx context.Context, promptID int64) (*domain.PromptVersion, error) {
	query := `
		SELECT id, prompt_id, version_number, template, system_prompt, created_at
		FROM prompt_versions
		WHERE prompt_id = $1 AND deleted_at IS NULL
		ORDER BY version_number DESC
		LIMIT 1`

	return s.scanVersionRow(s.conn(ctx).QueryRow(ctx, query, promptID), "get latest prompt version")
}

// ListPromptVersions returns a prompt's versions ordered by ascending
// version number. Each call is a fresh query, not a live cursor.
func (s *Store) ListPromptVersions(ctx context.Context, promptID int64) ([]*domain.PromptVersion, error) {
	query := `
		SELECT id, prompt_id, version_number, template, system_prompt, created_at
		FROM prompt_versions
		WHERE prompt_id = $1 AND deleted_at IS NULL
		ORDER BY version_number ASC`

	rows, err := s.conn(ctx).Query(ctx, query, promptID)
	if err != nil {
		return nil, fmt.Errorf("list prompt versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// DeletePromptVersion soft-deletes a version. The row stays behind so its
// number is never handed out again.
func (s *Store) DeletePromptVersion(ctx context.Context, id int64) error {
	query := `UPDATE prompt_versions SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.conn(ctx).Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete prompt version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) scanVersionRow(row pgx.Row, operation string) (*domain.PromptVersion, error) {
	v := &domain.PromptVersion{}
	err := row.Scan(&v.ID, &v.PromptID, &v.VersionNumber, &v.Template, &v.SystemPrompt, &v.CreatedAt)
	if err != nil {
		return nil, WrapNotFound(operation, err)
	}
	return v, nil
}

func scanVersions(rows pgx.Rows) ([]*domain.PromptVersion, error) {
	var versions []*domain.PromptVersion
	for rows.Next() {
		v := &domain.PromptVersion{}
		if err := rows.Scan(&v.ID, &v.PromptID, &v.VersionNumber, &v.Template, &v.SystemPrompt, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
