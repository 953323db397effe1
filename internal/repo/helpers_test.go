package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/repo"
	"github.com/pkordes/vacation-planner/testutil"
)

// repos bundles every repo on one rolled-back transaction.
//
// Requires TEST_DATABASE_URL; tests skip otherwise.
type repos struct {
	tx              pgx.Tx
	users           repo.UserRepo
	vacations       repo.VacationRepo
	legs            repo.LegRepo
	accommodations  repo.AccommodationRepo
	transportations repo.TransportationRepo
}

func newRepos(t *testing.T) repos {
	t.Helper()
	tx := testutil.NewTx(t)
	return repos{
		tx:              tx,
		users:           repo.NewUserRepo(tx),
		vacations:       repo.NewVacationRepo(tx),
		legs:            repo.NewLegRepo(tx),
		accommodations:  repo.NewAccommodationRepo(tx),
		transportations: repo.NewTransportationRepo(tx),
	}
}

// seedUser inserts a user with local credentials.
func (r repos) seedUser(t *testing.T, email string) domain.User {
	t.Helper()
	u, err := r.users.Create(context.Background(), email, "hash")
	require.NoError(t, err)
	return u
}

// seedVacation inserts a vacation owned by owner.
func (r repos) seedVacation(t *testing.T, owner domain.User, name string) domain.Vacation {
	t.Helper()
	v, err := r.vacations.Create(context.Background(), domain.Vacation{
		UserID: owner.ID,
		Name:   name,
		Budget: domain.Budget{MoneyBudget: decimal.NewFromInt(1000), DaysBudget: 10},
	})
	require.NoError(t, err)
	return v
}

// seedLeg creates an accommodation, a placeholder transportation and a leg,
// then appends the leg to vacationID.
func (r repos) seedLeg(t *testing.T, vacationID uuid.UUID, city string, cost string, days int) domain.Leg {
	t.Helper()
	ctx := context.Background()

	a, err := r.accommodations.Create(ctx, domain.Accommodation{
		City: city,
		Cost: decimal.RequireFromString(cost),
		Type: domain.AccommodationHostel,
		Days: days,
	})
	require.NoError(t, err)

	tr, err := r.transportations.Create(ctx, domain.PlaceholderTransportation())
	require.NoError(t, err)

	leg, err := r.legs.Create(ctx, domain.Leg{Accommodation: a, Transportation: tr})
	require.NoError(t, err)

	pos, err := r.vacations.AppendLeg(ctx, vacationID, leg.ID)
	require.NoError(t, err)
	leg.Order = pos
	return leg
}
