// Package repo contains all database access logic for the vacation planner.
// Each entity has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// mapError translates driver errors into domain sentinels.
// pgx.ErrNoRows becomes domain.ErrNotFound; a unique violation becomes
// domain.ErrConflict. Anything else is returned unchanged.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}

// uuidArray converts ids into the element type pgx encodes as uuid[].
func uuidArray(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgtype.UUID{Bytes: id, Valid: true}
	}
	return out
}

// fromUUIDArray is the inverse of uuidArray. Invalid (NULL) elements are skipped.
func fromUUIDArray(in []pgtype.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(in))
	for _, id := range in {
		if id.Valid {
			out = append(out, uuid.UUID(id.Bytes))
		}
	}
	return out
}

// enumArg turns an optional enum patch field into a nullable text argument.
func enumArg[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
