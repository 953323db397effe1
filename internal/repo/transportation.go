package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// TransportationRepo defines the persistence operations for Transportations.
type TransportationRepo interface {
	// Create inserts a new transportation and returns it with its generated id.
	Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error)

	// GetByID returns domain.ErrNotFound if no transportation with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transportation, error)

	// Update applies the non-nil patch fields and returns the updated record.
	// Returns domain.ErrNotFound if no transportation with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.TransportationPatch) (domain.Transportation, error)
}

// pgTransportationRepo is the Postgres implementation of TransportationRepo.
type pgTransportationRepo struct {
	db db
}

// NewTransportationRepo constructs a TransportationRepo backed by the provided db connection.
func NewTransportationRepo(db db) TransportationRepo {
	return &pgTransportationRepo{db: db}
}

const transportationColumns = `id, destination, type, cost, website, notes, booked`

func (r *pgTransportationRepo) Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error) {
	const q = `
		INSERT INTO transportations (destination, type, cost, website, notes, booked)
		VALUES (@destination, @type, @cost, @website, @notes, @booked)
		RETURNING ` + transportationColumns

	args := pgx.NamedArgs{
		"destination": t.Destination,
		"type":        string(t.Type),
		"cost":        t.Cost,
		"website":     t.Website,
		"notes":       t.Notes,
		"booked":      t.Booked,
	}

	result, err := scanTransportation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("repo.TransportationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Transportation, error) {
	const q = `SELECT ` + transportationColumns + ` FROM transportations WHERE id = @id`

	result, err := scanTransportation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("repo.TransportationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TransportationPatch) (domain.Transportation, error) {
	const q = `
		UPDATE transportations
		SET destination = COALESCE(@destination, destination),
		    type        = COALESCE(@type, type),
		    cost        = COALESCE(@cost, cost),
		    website     = COALESCE(@website, website),
		    notes       = COALESCE(@notes, notes),
		    booked      = COALESCE(@booked, booked)
		WHERE id = @id
		RETURNING ` + transportationColumns

	args := pgx.NamedArgs{
		"id":          id,
		"destination": patch.Destination,
		"type":        enumArg(patch.Type),
		"cost":        patch.Cost,
		"website":     patch.Website,
		"notes":       patch.Notes,
		"booked":      patch.Booked,
	}

	result, err := scanTransportation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("repo.TransportationRepo.Update: %w", err)
	}
	return result, nil
}

func scanTransportation(s scanner) (domain.Transportation, error) {
	var (
		t   domain.Transportation
		id  pgtype.UUID
		typ string
	)
	err := s.Scan(&id, &t.Destination, &typ, &t.Cost, &t.Website, &t.Notes, &t.Booked)
	if err != nil {
		return domain.Transportation{}, mapError(err)
	}
	t.ID = uuid.UUID(id.Bytes)
	t.Type = domain.TransportationType(typ)
	return t, nil
}
