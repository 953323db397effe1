package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/service"
)

func TestValidateAccommodation_AllFields(t *testing.T) {
	p, err := service.ValidateAccommodation(map[string]string{
		"city":    "Lisbon",
		"cost":    "120.50",
		"type":    "Hotel",
		"name":    "Casa Azul",
		"days":    "3",
		"website": "https://casa.example",
		"booked":  "true",
		"notes":   "late check-in",
	})

	require.NoError(t, err)
	require.NotNil(t, p.City)
	assert.Equal(t, "Lisbon", *p.City)
	require.NotNil(t, p.Cost)
	assert.True(t, decimal.RequireFromString("120.5").Equal(*p.Cost))
	require.NotNil(t, p.Type)
	assert.Equal(t, domain.AccommodationHotel, *p.Type)
	assert.Equal(t, "Casa Azul", *p.Name)
	assert.Equal(t, 3, *p.Days)
	assert.Equal(t, "https://casa.example", *p.Website)
	assert.True(t, *p.Booked)
	assert.Equal(t, "late check-in", *p.Notes)
}

func TestValidateAccommodation_PartialLeavesOthersNil(t *testing.T) {
	p, err := service.ValidateAccommodation(map[string]string{"city": "Porto"})

	require.NoError(t, err)
	assert.Equal(t, "Porto", *p.City)
	assert.Nil(t, p.Cost)
	assert.Nil(t, p.Type)
	assert.Nil(t, p.Days)
	assert.Nil(t, p.Booked)
}

func TestValidateAccommodation_UnknownKeysDropped(t *testing.T) {
	p, err := service.ValidateAccommodation(map[string]string{
		"city":       "Porto",
		"vacationID": "whatever",
		"_csrf":      "token",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AccommodationPatch{City: p.City}, p)
}

func TestValidateAccommodation_NameAlias(t *testing.T) {
	p, err := service.ValidateAccommodation(map[string]string{"accommodation_name": "Hostel One"})
	require.NoError(t, err)
	assert.Equal(t, "Hostel One", *p.Name)

	p, err = service.ValidateAccommodation(map[string]string{"accommodation_name": "alias", "name": "direct"})
	require.NoError(t, err)
	assert.Equal(t, "direct", *p.Name, "name wins over its alias")
}

func TestValidateAccommodation_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric cost":    {"cost": "abc"},
		"empty cost":          {"cost": ""},
		"negative cost":       {"cost": "-1"},
		"too many decimals":   {"cost": "1.005"},
		"huge cost":           {"cost": "10000000000"},
		"non-numeric days":    {"days": "three"},
		"fractional days":     {"days": "2.5"},
		"negative days":       {"days": "-2"},
		"unknown type":        {"type": "Spaceship"},
		"lowercase type":      {"type": "hotel"},
		"booked not literal":  {"booked": "yes"},
		"booked capitalised":  {"booked": "True"},
		"bad field among ok":  {"city": "Rome", "cost": "12", "days": "x"},
		"legacy combined str": {"booked": "true, false"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := service.ValidateAccommodation(fields)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, domain.AccommodationPatch{}, p, "nothing may be applied on failure")
		})
	}
}

func TestValidateAccommodation_AcceptsWholeNumberDaysWithDecimalPoint(t *testing.T) {
	p, err := service.ValidateAccommodation(map[string]string{"days": "4.0", "cost": " 7 "})

	require.NoError(t, err)
	assert.Equal(t, 4, *p.Days)
	assert.True(t, decimal.NewFromInt(7).Equal(*p.Cost))
}

func TestValidateTransportation(t *testing.T) {
	p, err := service.ValidateTransportation(map[string]string{
		"destination": "Madrid",
		"type":        "Train",
		"cost":        "45",
		"contact":     "renfe.example",
		"booked":      "false",
		"days":        "ignored",
	})

	require.NoError(t, err)
	assert.Equal(t, "Madrid", *p.Destination)
	assert.Equal(t, domain.TransportationTrain, *p.Type)
	assert.True(t, decimal.NewFromInt(45).Equal(*p.Cost))
	assert.Equal(t, "renfe.example", *p.Website, "contact is an alias of website")
	assert.False(t, *p.Booked)
	assert.Nil(t, p.Notes)
}

func TestValidateTransportation_Rejects(t *testing.T) {
	for _, fields := range []map[string]string{
		{"type": "Rocket"},
		{"type": ""},
		{"cost": "free"},
		{"booked": "1"},
	} {
		_, err := service.ValidateTransportation(fields)
		assert.ErrorIs(t, err, domain.ErrValidation, "fields %v", fields)
	}
}

func TestValidateTransportationSubmit(t *testing.T) {
	p, err := service.ValidateTransportationSubmit(map[string]string{
		"transportation_destination_city": "Seville",
		"transportation_type":             "Bus",
		"transportation_contact":          "alsa.example",
		"transportation_cost":             "19.99",
		"transportation_booked":           "true",
		"transportation_notes":            "window seat",
		"days":                            "2",
	})

	require.NoError(t, err)
	assert.Equal(t, "Seville", *p.Destination)
	assert.Equal(t, domain.TransportationBus, *p.Type)
	assert.Equal(t, "alsa.example", *p.Website)
	assert.True(t, decimal.RequireFromString("19.99").Equal(*p.Cost))
	assert.True(t, *p.Booked)
	assert.Equal(t, "window seat", *p.Notes)
}

func TestValidateTransportationSubmit_Rejects(t *testing.T) {
	for _, fields := range []map[string]string{
		{"transportation_cost": "NaN"},
		{"transportation_type": "Ferry"},
		{"transportation_booked": "maybe"},
		{"days": "lots"},
		{"days": "1e50000000"},
	} {
		_, err := service.ValidateTransportationSubmit(fields)
		assert.ErrorIs(t, err, domain.ErrValidation, "fields %v", fields)
	}
}

func TestValidateBudget(t *testing.T) {
	p, err := service.ValidateBudget(map[string]string{"moneyBudget": "2500", "daysBudget": "14", "moneyUsed": "999"})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2500).Equal(*p.MoneyBudget))
	assert.Equal(t, 14, *p.DaysBudget)

	_, err = service.ValidateBudget(map[string]string{"moneyBudget": "lots"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.ValidateBudget(map[string]string{"daysBudget": "1x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateBudget_RejectsExtremeExponentsQuickly(t *testing.T) {
	for _, raw := range []string{
		"1e50000000",
		"1e-50000000",
		"1E999999999",
		"0.000000000000000000001",
		strings.Repeat("9", 200),
	} {
		for _, key := range []string{"moneyBudget", "daysBudget"} {
			start := time.Now()
			p, err := service.ValidateBudget(map[string]string{key: raw})

			assert.ErrorIs(t, err, domain.ErrValidation, "%s=%s", key, raw)
			assert.Equal(t, domain.BudgetPatch{}, p)
			assert.Less(t, time.Since(start), 100*time.Millisecond, "%s=%s", key, raw)
		}
	}
}

func TestValidateBudget_SmallExponentAccepted(t *testing.T) {
	p, err := service.ValidateBudget(map[string]string{"moneyBudget": "1.5e3", "daysBudget": "2e1"})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(*p.MoneyBudget))
	assert.Equal(t, 20, *p.DaysBudget)
}

func TestValidateNewVacation(t *testing.T) {
	nv, err := service.ValidateNewVacation(map[string]string{
		"name":     "  Iberia  ",
		"budget":   "3000",
		"days":     "10",
		"calendar": "2025-07-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "Iberia", nv.Name)
	assert.True(t, decimal.NewFromInt(3000).Equal(nv.MoneyBudget))
	assert.Equal(t, 10, nv.Days)
	require.NotNil(t, nv.StartDate)
	assert.Equal(t, "2025-07-01", nv.StartDate.Format("2006-01-02"))
}

func TestValidateNewVacation_EmptyCalendarMeansNoDate(t *testing.T) {
	nv, err := service.ValidateNewVacation(map[string]string{"name": "Someday", "calendar": ""})

	require.NoError(t, err)
	assert.Nil(t, nv.StartDate)
	assert.True(t, nv.MoneyBudget.IsZero())
}

func TestValidateNewVacation_Rejects(t *testing.T) {
	for _, fields := range []map[string]string{
		{"budget": "abc"},
		{"days": "ten"},
		{"calendar": "next tuesday"},
	} {
		_, err := service.ValidateNewVacation(fields)
		assert.ErrorIs(t, err, domain.ErrValidation, "fields %v", fields)
	}
}
