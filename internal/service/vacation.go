// Package service contains the business logic for the vacation planner.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
)

// VacationService implements vacation creation, budget updates, and the
// read-side aggregation of costs and days.
type VacationService struct {
	vacations repo.VacationRepo
	legs      repo.LegRepo
}

// NewVacationService constructs a VacationService backed by the provided repos.
func NewVacationService(vacations repo.VacationRepo, legs repo.LegRepo) *VacationService {
	return &VacationService{vacations: vacations, legs: legs}
}

// Create validates the create-vacation form and persists a vacation owned by
// owner. The day count becomes both the day budget and the vacation length.
// Returns domain.ErrValidation if any field is malformed.
func (s *VacationService) Create(ctx context.Context, owner domain.User, fields map[string]string) (domain.Vacation, error) {
	nv, err := ValidateNewVacation(fields)
	if err != nil {
		return domain.Vacation{}, err
	}

	created, err := s.vacations.Create(ctx, domain.Vacation{
		UserID: owner.ID,
		Name:   nv.Name,
		Budget: domain.Budget{
			MoneyBudget: nv.MoneyBudget,
			DaysBudget:  nv.Days,
		},
		StartDate: nv.StartDate,
		NumDays:   nv.Days,
	})
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("service.VacationService.Create: %w", err)
	}
	return created, nil
}

// Profile resolves every vacation the owner holds and aggregates the first.
// Returns domain.ErrNotFound if the owner has no vacation yet.
func (s *VacationService) Profile(ctx context.Context, owner domain.User) (domain.ProfileView, error) {
	if len(owner.VacationIDs) == 0 {
		return domain.ProfileView{}, fmt.Errorf("service.VacationService.Profile: %w", domain.ErrNotFound)
	}

	vacations, err := s.vacations.ListByIDs(ctx, owner.VacationIDs)
	if err != nil {
		return domain.ProfileView{}, fmt.Errorf("service.VacationService.Profile: %w", err)
	}
	if len(vacations) == 0 {
		return domain.ProfileView{}, fmt.Errorf("service.VacationService.Profile: %w", domain.ErrNotFound)
	}

	current, err := s.view(ctx, vacations[0])
	if err != nil {
		return domain.ProfileView{}, fmt.Errorf("service.VacationService.Profile: %w", err)
	}
	return domain.ProfileView{Vacations: vacations, Current: current}, nil
}

// Detail returns one vacation with resolved legs and totals.
// The ownership check runs before any lookup: a vacation the owner does not
// hold yields domain.ErrForbidden whether or not it exists.
func (s *VacationService) Detail(ctx context.Context, owner domain.User, id uuid.UUID) (domain.VacationView, error) {
	if !owner.OwnsVacation(id) {
		return domain.VacationView{}, fmt.Errorf("service.VacationService.Detail: %w", domain.ErrForbidden)
	}

	vacation, err := s.vacations.GetByID(ctx, id)
	if err != nil {
		return domain.VacationView{}, fmt.Errorf("service.VacationService.Detail: %w", err)
	}

	result, err := s.view(ctx, vacation)
	if err != nil {
		return domain.VacationView{}, fmt.Errorf("service.VacationService.Detail: %w", err)
	}
	return result, nil
}

// UpdateBudget checks ownership, then applies the validated budget fields.
// A vacation that no longer exists is a silent no-op.
func (s *VacationService) UpdateBudget(ctx context.Context, owner domain.User, id uuid.UUID, fields map[string]string) error {
	if !owner.OwnsVacation(id) {
		return fmt.Errorf("service.VacationService.UpdateBudget: %w", domain.ErrForbidden)
	}

	if _, err := s.vacations.GetByID(ctx, id); err != nil {
		return ignoreNotFound("service.VacationService.UpdateBudget", err)
	}

	patch, err := ValidateBudget(fields)
	if err != nil {
		return err
	}

	if _, err := s.vacations.UpdateBudget(ctx, id, patch); err != nil {
		return ignoreNotFound("service.VacationService.UpdateBudget", err)
	}
	return nil
}

// view resolves the vacation's legs and fills in the derived budget usage.
func (s *VacationService) view(ctx context.Context, vacation domain.Vacation) (domain.VacationView, error) {
	legs, err := s.legs.Resolve(ctx, vacation.LegIDs)
	if err != nil {
		return domain.VacationView{}, err
	}
	if legs == nil {
		legs = []domain.Leg{}
	}

	totals := Totals(legs)
	vacation.Budget.MoneyUsed = totals.Money()
	vacation.Budget.DaysUsed = totals.Days

	return domain.VacationView{Vacation: vacation, Legs: legs, Totals: totals}, nil
}

// Totals sums accommodation cost, transportation cost, and accommodation
// days over legs. The result does not depend on the order of legs.
func Totals(legs []domain.Leg) domain.Totals {
	t := domain.Totals{
		AccommodationCost:  decimal.Zero,
		TransportationCost: decimal.Zero,
	}
	for _, leg := range legs {
		t.AccommodationCost = t.AccommodationCost.Add(leg.Accommodation.Cost)
		t.TransportationCost = t.TransportationCost.Add(leg.Transportation.Cost)
		t.Days += leg.Accommodation.Days
	}
	return t
}

// ignoreNotFound turns domain.ErrNotFound into success and wraps anything
// else with op.
func ignoreNotFound(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
