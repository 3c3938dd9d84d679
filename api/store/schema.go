package store

import (
	"context"
	"fmt"
)

// schemaStatements creates the evaluator tables. Statements are idempotent
// so EnsureSchema can run on every startup. Cascading foreign keys implement
// the delete policy: removing an input set removes its inputs, their outputs
// and any evaluations on those outputs.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS input_sets (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS inputs (
		id           BIGSERIAL PRIMARY KEY,
		input_set_id BIGINT REFERENCES input_sets(id) ON DELETE CASCADE,
		name         TEXT,
		text         TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS models (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS prompts (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_versions (
		id             BIGSERIAL PRIMARY KEY,
		prompt_id      BIGINT NOT NULL REFERENCES prompts(id) ON DELETE CASCADE,
		version_number INTEGER NOT NULL,
		template       TEXT NOT NULL,
		system_prompt  TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		deleted_at     TIMESTAMPTZ,
		UNIQUE (prompt_id, version_number)
	)`,
	`CREATE TABLE IF NOT EXISTS outputs (
		id                BIGSERIAL PRIMARY KEY,
		input_id          BIGINT NOT NULL REFERENCES inputs(id) ON DELETE CASCADE,
		model_id          BIGINT NOT NULL REFERENCES models(id) ON DELETE CASCADE,
		prompt_id         BIGINT NOT NULL REFERENCES prompts(id) ON DELETE CASCADE,
		prompt_version_id BIGINT NOT NULL REFERENCES prompt_versions(id) ON DELETE CASCADE,
		text              TEXT NOT NULL,
		processing_time   DOUBLE PRECISION NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (input_id, model_id, prompt_id, prompt_version_id)
	)`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id         BIGSERIAL PRIMARY KEY,
		output_id  BIGINT NOT NULL UNIQUE REFERENCES outputs(id) ON DELETE CASCADE,
		quality    TEXT NOT NULL,
		notes      TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_inputs_input_set ON inputs(input_set_id)`,
	`CREATE INDEX IF NOT EXISTS idx_prompt_versions_prompt ON prompt_versions(prompt_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outputs_input ON outputs(input_id)`,
}

// EnsureSchema creates any missing tables and indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
