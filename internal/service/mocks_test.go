package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
)

// The mocks below are hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// Calling a method whose field is nil panics, which fails the test; that is
// how tests assert a repo is never reached.

type mockVacationRepo struct {
	create       func(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Vacation, error)
	listByIDs    func(ctx context.Context, ids []uuid.UUID) ([]domain.Vacation, error)
	updateBudget func(ctx context.Context, id uuid.UUID, p domain.BudgetPatch) (domain.Vacation, error)
	appendLeg    func(ctx context.Context, vacationID, legID uuid.UUID) (int, error)
}

func (m *mockVacationRepo) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	return m.create(ctx, v)
}
func (m *mockVacationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vacation, error) {
	return m.getByID(ctx, id)
}
func (m *mockVacationRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Vacation, error) {
	return m.listByIDs(ctx, ids)
}
func (m *mockVacationRepo) UpdateBudget(ctx context.Context, id uuid.UUID, p domain.BudgetPatch) (domain.Vacation, error) {
	return m.updateBudget(ctx, id, p)
}
func (m *mockVacationRepo) AppendLeg(ctx context.Context, vacationID, legID uuid.UUID) (int, error) {
	return m.appendLeg(ctx, vacationID, legID)
}

// compile-time check: mockVacationRepo must satisfy repo.VacationRepo.
var _ repo.VacationRepo = (*mockVacationRepo)(nil)

type mockLegRepo struct {
	create  func(ctx context.Context, leg domain.Leg) (domain.Leg, error)
	resolve func(ctx context.Context, ids []uuid.UUID) ([]domain.Leg, error)
}

func (m *mockLegRepo) Create(ctx context.Context, leg domain.Leg) (domain.Leg, error) {
	return m.create(ctx, leg)
}
func (m *mockLegRepo) Resolve(ctx context.Context, ids []uuid.UUID) ([]domain.Leg, error) {
	return m.resolve(ctx, ids)
}

var _ repo.LegRepo = (*mockLegRepo)(nil)

type mockAccommodationRepo struct {
	create  func(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Accommodation, error)
	update  func(ctx context.Context, id uuid.UUID, p domain.AccommodationPatch) (domain.Accommodation, error)
}

func (m *mockAccommodationRepo) Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	return m.create(ctx, a)
}
func (m *mockAccommodationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Accommodation, error) {
	return m.getByID(ctx, id)
}
func (m *mockAccommodationRepo) Update(ctx context.Context, id uuid.UUID, p domain.AccommodationPatch) (domain.Accommodation, error) {
	return m.update(ctx, id, p)
}

var _ repo.AccommodationRepo = (*mockAccommodationRepo)(nil)

type mockTransportationRepo struct {
	create  func(ctx context.Context, t domain.Transportation) (domain.Transportation, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Transportation, error)
	update  func(ctx context.Context, id uuid.UUID, p domain.TransportationPatch) (domain.Transportation, error)
}

func (m *mockTransportationRepo) Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error) {
	return m.create(ctx, t)
}
func (m *mockTransportationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Transportation, error) {
	return m.getByID(ctx, id)
}
func (m *mockTransportationRepo) Update(ctx context.Context, id uuid.UUID, p domain.TransportationPatch) (domain.Transportation, error) {
	return m.update(ctx, id, p)
}

var _ repo.TransportationRepo = (*mockTransportationRepo)(nil)

type mockUserRepo struct {
	create           func(ctx context.Context, email, hash string) (domain.User, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail       func(ctx context.Context, email string) (domain.User, error)
	setCredentials   func(ctx context.Context, id uuid.UUID, email, hash string) (domain.User, error)
	clearCredentials func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, email, hash string) (domain.User, error) {
	return m.create(ctx, email, hash)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) SetCredentials(ctx context.Context, id uuid.UUID, email, hash string) (domain.User, error) {
	return m.setCredentials(ctx, id, email, hash)
}
func (m *mockUserRepo) ClearCredentials(ctx context.Context, id uuid.UUID) error {
	return m.clearCredentials(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)
