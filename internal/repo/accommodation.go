package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// AccommodationRepo defines the persistence operations for Accommodations.
type AccommodationRepo interface {
	// Create inserts a new accommodation and returns it with its generated id.
	Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)

	// GetByID returns domain.ErrNotFound if no accommodation with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Accommodation, error)

	// Update applies the non-nil patch fields and returns the updated record.
	// Returns domain.ErrNotFound if no accommodation with that ID exists.
	Update(ctx context.Context, id uuid.UUID, patch domain.AccommodationPatch) (domain.Accommodation, error)
}

// pgAccommodationRepo is the Postgres implementation of AccommodationRepo.
type pgAccommodationRepo struct {
	db db
}

// NewAccommodationRepo constructs an AccommodationRepo backed by the provided db connection.
func NewAccommodationRepo(db db) AccommodationRepo {
	return &pgAccommodationRepo{db: db}
}

const accommodationColumns = `id, city, cost, type, name, days, website, booked, notes`

func (r *pgAccommodationRepo) Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	const q = `
		INSERT INTO accommodations (city, cost, type, name, days, website, booked, notes)
		VALUES (@city, @cost, @type, @name, @days, @website, @booked, @notes)
		RETURNING ` + accommodationColumns

	args := pgx.NamedArgs{
		"city":    a.City,
		"cost":    a.Cost,
		"type":    string(a.Type),
		"name":    a.Name,
		"days":    a.Days,
		"website": a.Website,
		"booked":  a.Booked,
		"notes":   a.Notes,
	}

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = @id`

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update uses COALESCE so that concurrent updates touching different fields
// do not overwrite each other.
func (r *pgAccommodationRepo) Update(ctx context.Context, id uuid.UUID, patch domain.AccommodationPatch) (domain.Accommodation, error) {
	const q = `
		UPDATE accommodations
		SET city    = COALESCE(@city, city),
		    cost    = COALESCE(@cost, cost),
		    type    = COALESCE(@type, type),
		    name    = COALESCE(@name, name),
		    days    = COALESCE(@days, days),
		    website = COALESCE(@website, website),
		    booked  = COALESCE(@booked, booked),
		    notes   = COALESCE(@notes, notes)
		WHERE id = @id
		RETURNING ` + accommodationColumns

	args := pgx.NamedArgs{
		"id":      id,
		"city":    patch.City,
		"cost":    patch.Cost,
		"type":    enumArg(patch.Type),
		"name":    patch.Name,
		"days":    patch.Days,
		"website": patch.Website,
		"booked":  patch.Booked,
		"notes":   patch.Notes,
	}

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.Update: %w", err)
	}
	return result, nil
}

func scanAccommodation(s scanner) (domain.Accommodation, error) {
	var (
		a   domain.Accommodation
		id  pgtype.UUID
		typ string
	)
	err := s.Scan(&id, &a.City, &a.Cost, &typ, &a.Name, &a.Days, &a.Website, &a.Booked, &a.Notes)
	if err != nil {
		return domain.Accommodation{}, mapError(err)
	}
	a.ID = uuid.UUID(id.Bytes)
	a.Type = domain.AccommodationType(typ)
	return a, nil
}
