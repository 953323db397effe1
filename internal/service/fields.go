package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// Form fields arrive as a flat map of field name to raw string value.
// Each Validate function accepts only its kind's allow-listed keys, drops
// every other key silently, and rejects the whole map with
// domain.ErrValidation on the first malformed value. A key that is absent
// leaves the corresponding patch field nil.

// maxMoney is one above the largest amount NUMERIC(12,2) can hold.
var maxMoney = decimal.New(1, 10)

// maxDays bounds day counts well inside the INTEGER column range.
const maxDays = 100_000

// maxNumberLen and maxExponent bound raw numeric input before any decimal
// arithmetic. Comparing or rounding a value like 1e50000000 expands the
// exponent into a big integer.
const (
	maxNumberLen = 32
	maxExponent  = 16
)

// dateLayout is the format of HTML <input type="date"> values.
const dateLayout = "2006-01-02"

// ValidateAccommodation validates fields for an accommodation update or for
// the accommodation half of a new leg. accommodation_name is accepted as an
// alias of name; name wins when both are present.
func ValidateAccommodation(fields map[string]string) (domain.AccommodationPatch, error) {
	r := fieldReader{fields: fields}
	p := domain.AccommodationPatch{
		City:    r.text("city"),
		Cost:    r.money("cost"),
		Name:    r.text("name", "accommodation_name"),
		Days:    r.days("days"),
		Website: r.text("website"),
		Booked:  r.boolean("booked"),
		Notes:   r.text("notes"),
	}
	if raw := r.text("type"); raw != nil {
		t, err := domain.ParseAccommodationType(*raw)
		r.fail(err)
		p.Type = &t
	}
	if r.err != nil {
		return domain.AccommodationPatch{}, r.err
	}
	return p, nil
}

// ValidateTransportation validates fields for a transportation update.
// contact is accepted as an alias of website.
func ValidateTransportation(fields map[string]string) (domain.TransportationPatch, error) {
	r := fieldReader{fields: fields}
	p := domain.TransportationPatch{
		Destination: r.text("destination"),
		Cost:        r.money("cost"),
		Website:     r.text("website", "contact"),
		Notes:       r.text("notes"),
		Booked:      r.boolean("booked"),
	}
	p.Type = r.transportationType("type")
	if r.err != nil {
		return domain.TransportationPatch{}, r.err
	}
	return p, nil
}

// ValidateTransportationSubmit validates the prefixed field names posted by
// the leg detail form. days is checked numerically but not applied.
func ValidateTransportationSubmit(fields map[string]string) (domain.TransportationPatch, error) {
	r := fieldReader{fields: fields}
	p := domain.TransportationPatch{
		Destination: r.text("transportation_destination_city"),
		Cost:        r.money("transportation_cost"),
		Website:     r.text("transportation_contact"),
		Notes:       r.text("transportation_notes"),
		Booked:      r.boolean("transportation_booked"),
	}
	p.Type = r.transportationType("transportation_type")
	r.check(r.days, "days")
	if r.err != nil {
		return domain.TransportationPatch{}, r.err
	}
	return p, nil
}

// ValidateBudget validates fields for a budget update.
func ValidateBudget(fields map[string]string) (domain.BudgetPatch, error) {
	r := fieldReader{fields: fields}
	p := domain.BudgetPatch{
		MoneyBudget: r.money("moneyBudget"),
		DaysBudget:  r.days("daysBudget"),
	}
	if r.err != nil {
		return domain.BudgetPatch{}, r.err
	}
	return p, nil
}

// ValidateNewVacation validates the create-vacation form: name, budget,
// days and calendar (the start date). Absent values default to zero.
func ValidateNewVacation(fields map[string]string) (domain.NewVacation, error) {
	r := fieldReader{fields: fields}
	var nv domain.NewVacation
	if name := r.text("name"); name != nil {
		nv.Name = strings.TrimSpace(*name)
	}
	if money := r.money("budget"); money != nil {
		nv.MoneyBudget = *money
	}
	if days := r.days("days"); days != nil {
		nv.Days = *days
	}
	nv.StartDate = r.date("calendar")
	if r.err != nil {
		return domain.NewVacation{}, r.err
	}
	return nv, nil
}

// fieldReader extracts typed values from a raw field map and remembers the
// first failure. Once failed, every further read is a no-op.
type fieldReader struct {
	fields map[string]string
	err    error
}

func (r *fieldReader) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// lookup returns the value of the first key present in the map.
func (r *fieldReader) lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r.fields[k]; ok {
			return v, true
		}
	}
	return "", false
}

func (r *fieldReader) text(keys ...string) *string {
	v, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	return &v
}

// check runs a reader for its validation only and discards the value.
func (r *fieldReader) check(read func(string) *int, key string) {
	read(key)
}

// number parses raw as a decimal and rejects values whose length or
// exponent is out of range before they reach any comparison.
func (r *fieldReader) number(key, raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) > maxNumberLen {
		r.fail(fmt.Errorf("%w: %s is too long", domain.ErrValidation, key))
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s must be a number", domain.ErrValidation, key))
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		r.fail(fmt.Errorf("%w: %s is out of range", domain.ErrValidation, key))
		return decimal.Decimal{}, false
	}
	return d, true
}

func (r *fieldReader) money(key string) *decimal.Decimal {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	d, ok := r.number(key, raw)
	if !ok {
		return nil
	}
	switch {
	case d.IsNegative():
		r.fail(fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, key))
	case d.GreaterThanOrEqual(maxMoney):
		r.fail(fmt.Errorf("%w: %s is too large", domain.ErrValidation, key))
	case !d.Equal(d.Round(2)):
		r.fail(fmt.Errorf("%w: %s has more than two decimal places", domain.ErrValidation, key))
	default:
		return &d
	}
	return nil
}

func (r *fieldReader) days(key string) *int {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	d, ok := r.number(key, raw)
	if !ok {
		return nil
	}
	switch {
	case !d.IsInteger():
		r.fail(fmt.Errorf("%w: %s must be a whole number", domain.ErrValidation, key))
	case d.IsNegative():
		r.fail(fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, key))
	case d.GreaterThan(decimal.NewFromInt(maxDays)):
		r.fail(fmt.Errorf("%w: %s is too large", domain.ErrValidation, key))
	default:
		n := int(d.IntPart())
		return &n
	}
	return nil
}

// boolean accepts only the literal strings "true" and "false".
func (r *fieldReader) boolean(key string) *bool {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	var b bool
	switch raw {
	case "true":
		b = true
	case "false":
		b = false
	default:
		r.fail(fmt.Errorf("%w: %s must be true or false", domain.ErrValidation, key))
		return nil
	}
	return &b
}

func (r *fieldReader) transportationType(key string) *domain.TransportationType {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	t, err := domain.ParseTransportationType(raw)
	if err != nil {
		r.fail(err)
		return nil
	}
	return &t
}

// date accepts an empty value (no date) or a dateLayout date.
func (r *fieldReader) date(key string) *time.Time {
	raw, ok := r.lookup(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || r.err != nil {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", domain.ErrValidation, key))
		return nil
	}
	return &t
}
