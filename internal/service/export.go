package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
)

// ExportService assembles a flat export of one vacation's legs.
type ExportService struct {
	vacations repo.VacationRepo
	legs      repo.LegRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(vacations repo.VacationRepo, legs repo.LegRepo) *ExportService {
	return &ExportService{vacations: vacations, legs: legs}
}

// Export returns one ExportRow per leg of the vacation, in leg order.
// Returns domain.ErrForbidden if owner does not hold id.
func (s *ExportService) Export(ctx context.Context, owner domain.User, id uuid.UUID) ([]domain.ExportRow, error) {
	if !owner.OwnsVacation(id) {
		return nil, fmt.Errorf("service.ExportService.Export: %w", domain.ErrForbidden)
	}

	vacation, err := s.vacations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	legs, err := s.legs.Resolve(ctx, vacation.LegIDs)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var start string
	if vacation.StartDate != nil {
		start = vacation.StartDate.Format(dateLayout)
	}

	rows := make([]domain.ExportRow, 0, len(legs))
	for i, leg := range legs {
		rows = append(rows, domain.ExportRow{
			VacationID:           vacation.ID.String(),
			VacationName:         vacation.Name,
			StartDate:            start,
			Leg:                  i + 1,
			City:                 leg.Accommodation.City,
			AccommodationName:    leg.Accommodation.Name,
			AccommodationType:    string(leg.Accommodation.Type),
			AccommodationCost:    leg.Accommodation.Cost.StringFixed(2),
			Days:                 leg.Accommodation.Days,
			AccommodationBooked:  leg.Accommodation.Booked,
			Destination:          leg.Transportation.Destination,
			TransportationType:   string(leg.Transportation.Type),
			TransportationCost:   leg.Transportation.Cost.StringFixed(2),
			TransportationBooked: leg.Transportation.Booked,
		})
	}
	return rows, nil
}
