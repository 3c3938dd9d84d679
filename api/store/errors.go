package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JohannesStutz/llm-evaluator/api/domain"
)

// WrapError wraps an error with an operation context.
func WrapError(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, err)
}

// WrapNotFound wraps an error, converting pgx.ErrNoRows to domain.ErrNotFound.
func WrapNotFound(operation string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return WrapError(operation, err)
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
