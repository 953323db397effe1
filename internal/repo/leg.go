package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// LegRepo defines the persistence operations for Legs.
// A leg only stores references; Resolve joins in its accommodation and
// transportation.
type LegRepo interface {
	// Create inserts a leg referencing leg.Accommodation.ID and
	// leg.Transportation.ID and returns it with its generated id.
	// The leg is not part of any vacation until VacationRepo.AppendLeg.
	Create(ctx context.Context, leg domain.Leg) (domain.Leg, error)

	// Resolve returns the legs for ids, fully populated, in the order of ids.
	// Ids that do not exist are skipped.
	Resolve(ctx context.Context, ids []uuid.UUID) ([]domain.Leg, error)
}

// pgLegRepo is the Postgres implementation of LegRepo.
type pgLegRepo struct {
	db db
}

// NewLegRepo constructs a LegRepo backed by the provided db connection.
func NewLegRepo(db db) LegRepo {
	return &pgLegRepo{db: db}
}

// Create inserts a leg row. The children are expected to exist already.
func (r *pgLegRepo) Create(ctx context.Context, leg domain.Leg) (domain.Leg, error) {
	const q = `
		INSERT INTO legs (accommodation_id, transportation_id)
		VALUES (@accommodation_id, @transportation_id)
		RETURNING id`

	args := pgx.NamedArgs{
		"accommodation_id":  leg.Accommodation.ID,
		"transportation_id": leg.Transportation.ID,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Leg{}, fmt.Errorf("repo.LegRepo.Create: %w", mapError(err))
	}
	leg.ID = uuid.UUID(id.Bytes)
	return leg, nil
}

// Resolve loads legs together with their children in a single query.
func (r *pgLegRepo) Resolve(ctx context.Context, ids []uuid.UUID) ([]domain.Leg, error) {
	if len(ids) == 0 {
		return []domain.Leg{}, nil
	}

	const q = `
		SELECT l.id, COALESCE(vl.position, 0),
		       a.id, a.city, a.cost, a.type, a.name, a.days, a.website, a.booked, a.notes,
		       t.id, t.destination, t.type, t.cost, t.website, t.notes, t.booked
		FROM legs l
		JOIN accommodations a ON a.id = l.accommodation_id
		JOIN transportations t ON t.id = l.transportation_id
		LEFT JOIN vacation_legs vl ON vl.leg_id = l.id
		WHERE l.id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidArray(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.LegRepo.Resolve: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.Leg, len(ids))
	for rows.Next() {
		leg, err := scanLeg(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LegRepo.Resolve: scan: %w", err)
		}
		byID[leg.ID] = leg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LegRepo.Resolve: rows: %w", err)
	}

	legs := make([]domain.Leg, 0, len(byID))
	for _, id := range ids {
		if leg, ok := byID[id]; ok {
			legs = append(legs, leg)
		}
	}
	return legs, nil
}

func scanLeg(s scanner) (domain.Leg, error) {
	var (
		leg                domain.Leg
		id, accID, transID pgtype.UUID
		accType, transType string
	)
	a := &leg.Accommodation
	t := &leg.Transportation

	err := s.Scan(&id, &leg.Order,
		&accID, &a.City, &a.Cost, &accType, &a.Name, &a.Days, &a.Website, &a.Booked, &a.Notes,
		&transID, &t.Destination, &transType, &t.Cost, &t.Website, &t.Notes, &t.Booked)
	if err != nil {
		return domain.Leg{}, mapError(err)
	}

	leg.ID = uuid.UUID(id.Bytes)
	a.ID = uuid.UUID(accID.Bytes)
	a.Type = domain.AccommodationType(accType)
	t.ID = uuid.UUID(transID.Bytes)
	t.Type = domain.TransportationType(transType)
	return leg, nil
}
