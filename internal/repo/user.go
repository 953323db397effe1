package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// UserRepo defines the persistence operations for Users.
// Every read populates User.VacationIDs, the user's vacation reference set.
type UserRepo interface {
	// Create inserts a user with local credentials.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail looks a user up case-insensitively.
	// Returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// SetCredentials replaces the local email and password hash of a user.
	// Returns domain.ErrConflict if the email belongs to another user.
	SetCredentials(ctx context.Context, id uuid.UUID, email, passwordHash string) (domain.User, error)

	// ClearCredentials removes the local email and password hash of a user.
	ClearCredentials(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// userColumns selects a user together with the ids of the vacations it owns.
const userColumns = `
	u.id, COALESCE(u.email, ''), u.password_hash, u.created_at,
	ARRAY(SELECT v.id FROM vacations v WHERE v.user_id = u.id ORDER BY v.created_at, v.id)`

func (r *pgUserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	const q = `
		WITH u AS (
			INSERT INTO users (email, password_hash)
			VALUES (@email, @password_hash)
			RETURNING id, email, password_hash, created_at
		)
		SELECT u.id, u.email, u.password_hash, u.created_at, '{}'::uuid[]
		FROM u`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email, "password_hash": passwordHash})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u WHERE u.id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users u WHERE lower(u.email) = lower(@email)`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) SetCredentials(ctx context.Context, id uuid.UUID, email, passwordHash string) (domain.User, error) {
	const q = `
		UPDATE users
		SET email = @email, password_hash = @password_hash
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "email": email, "password_hash": passwordHash})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.SetCredentials: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, fmt.Errorf("repo.UserRepo.SetCredentials: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *pgUserRepo) ClearCredentials(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE users SET email = NULL, password_hash = '' WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.ClearCredentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.ClearCredentials: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single row selected with userColumns into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u   domain.User
		id  pgtype.UUID
		ids []pgtype.UUID
	)
	if err := s.Scan(&id, &u.Email, &u.PasswordHash, &u.CreatedAt, &ids); err != nil {
		return domain.User{}, mapError(err)
	}
	u.ID = uuid.UUID(id.Bytes)
	u.VacationIDs = fromUUIDArray(ids)
	return u, nil
}
