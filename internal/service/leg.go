package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
)

// LegService creates legs and edits their accommodation and transportation.
// It holds the vacation repo because a new leg must be appended to its
// vacation's ordered leg list.
type LegService struct {
	vacations       repo.VacationRepo
	legs            repo.LegRepo
	accommodations  repo.AccommodationRepo
	transportations repo.TransportationRepo
}

// NewLegService constructs a LegService backed by the provided repos.
func NewLegService(
	vacations repo.VacationRepo,
	legs repo.LegRepo,
	accommodations repo.AccommodationRepo,
	transportations repo.TransportationRepo,
) *LegService {
	return &LegService{
		vacations:       vacations,
		legs:            legs,
		accommodations:  accommodations,
		transportations: transportations,
	}
}

// AddLeg creates an accommodation from fields, an empty transportation, and a
// leg pairing them, then appends the leg to the vacation.
//
// Returns domain.ErrForbidden if owner does not hold vacationID and
// domain.ErrValidation if fields are malformed; in both cases nothing is
// created. The creates are not transactional: when a later step fails the
// earlier rows stay behind, and the returned error names them.
func (s *LegService) AddLeg(ctx context.Context, owner domain.User, vacationID uuid.UUID, fields map[string]string) (domain.Leg, error) {
	if !owner.OwnsVacation(vacationID) {
		return domain.Leg{}, fmt.Errorf("service.LegService.AddLeg: %w", domain.ErrForbidden)
	}

	patch, err := ValidateAccommodation(fields)
	if err != nil {
		return domain.Leg{}, err
	}

	accommodation, err := s.accommodations.Create(ctx, patch.NewAccommodation())
	if err != nil {
		return domain.Leg{}, fmt.Errorf("service.LegService.AddLeg: %w", err)
	}

	transportation, err := s.transportations.Create(ctx, domain.PlaceholderTransportation())
	if err != nil {
		return domain.Leg{}, fmt.Errorf("service.LegService.AddLeg: orphaned accommodation %s: %w",
			accommodation.ID, err)
	}

	leg, err := s.legs.Create(ctx, domain.Leg{Accommodation: accommodation, Transportation: transportation})
	if err != nil {
		return domain.Leg{}, fmt.Errorf("service.LegService.AddLeg: orphaned accommodation %s, transportation %s: %w",
			accommodation.ID, transportation.ID, err)
	}

	position, err := s.vacations.AppendLeg(ctx, vacationID, leg.ID)
	if err != nil {
		return domain.Leg{}, fmt.Errorf("service.LegService.AddLeg: orphaned leg %s: %w", leg.ID, err)
	}
	leg.Order = position
	return leg, nil
}

// UpdateAccommodation applies validated fields to an accommodation.
// An unknown id is a silent no-op and is checked before validation.
func (s *LegService) UpdateAccommodation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	if _, err := s.accommodations.GetByID(ctx, id); err != nil {
		return ignoreNotFound("service.LegService.UpdateAccommodation", err)
	}

	patch, err := ValidateAccommodation(fields)
	if err != nil {
		return err
	}

	if _, err := s.accommodations.Update(ctx, id, patch); err != nil {
		return ignoreNotFound("service.LegService.UpdateAccommodation", err)
	}
	return nil
}

// UpdateTransportation applies validated fields to a transportation.
// An unknown id is a silent no-op.
func (s *LegService) UpdateTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	return s.updateTransportation(ctx, "service.LegService.UpdateTransportation", id, fields, ValidateTransportation)
}

// SubmitTransportation is UpdateTransportation for the prefixed field names
// of the leg detail form.
func (s *LegService) SubmitTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error {
	return s.updateTransportation(ctx, "service.LegService.SubmitTransportation", id, fields, ValidateTransportationSubmit)
}

func (s *LegService) updateTransportation(
	ctx context.Context,
	op string,
	id uuid.UUID,
	fields map[string]string,
	validate func(map[string]string) (domain.TransportationPatch, error),
) error {
	if _, err := s.transportations.GetByID(ctx, id); err != nil {
		return ignoreNotFound(op, err)
	}

	patch, err := validate(fields)
	if err != nil {
		return err
	}

	if _, err := s.transportations.Update(ctx, id, patch); err != nil {
		return ignoreNotFound(op, err)
	}
	return nil
}
