// Package domain contains the core data types for the vacation planner.
// Apart from uuid and decimal it has no external dependencies and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is the per-vacation allowance. MoneyUsed and DaysUsed are derived
// from the vacation's legs on every read and are never stored.
type Budget struct {
	MoneyBudget decimal.Decimal
	DaysBudget  int
	MoneyUsed   decimal.Decimal
	DaysUsed    int
}

// MoneyLeft is the unspent part of the money budget. It may be negative.
func (b Budget) MoneyLeft() decimal.Decimal {
	return b.MoneyBudget.Sub(b.MoneyUsed)
}

// DaysLeft is the unplanned part of the day budget. It may be negative.
func (b Budget) DaysLeft() int {
	return b.DaysBudget - b.DaysUsed
}

// Vacation is the top-level aggregate; legs belong to a vacation through the
// ordered LegIDs reference list.
type Vacation struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Budget    Budget
	StartDate *time.Time // nil when no start date was chosen
	NumDays   int
	LegIDs    []uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Totals are the aggregates recomputed from a vacation's resolved legs.
type Totals struct {
	AccommodationCost  decimal.Decimal
	TransportationCost decimal.Decimal
	Days               int
}

// Money is the combined accommodation and transportation cost.
func (t Totals) Money() decimal.Decimal {
	return t.AccommodationCost.Add(t.TransportationCost)
}

// VacationView is a vacation with its legs resolved and totals computed,
// ready for rendering.
type VacationView struct {
	Vacation Vacation
	Legs     []Leg
	Totals   Totals
}

// BudgetPatch is a validated partial update of a vacation's budget.
// Nil fields are left unchanged.
type BudgetPatch struct {
	MoneyBudget *decimal.Decimal
	DaysBudget  *int
}

// NewVacation is the validated content of the create-vacation form.
type NewVacation struct {
	Name        string
	MoneyBudget decimal.Decimal
	Days        int
	StartDate   *time.Time
}

// ProfileView is what the profile page shows: every vacation the user owns
// and the fully resolved first one.
type ProfileView struct {
	Vacations []Vacation
	Current   VacationView
}
