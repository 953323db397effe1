package domain

// ExportRow is a single row in a vacation export.
// It is a flat, denormalized view: one row per leg, with vacation fields
// repeated for every leg. A vacation with no legs yields no rows.
//
// Money values are pre-formatted with two decimal places so CSV and JSON
// consumers see the same text.
type ExportRow struct {
	// Vacation fields, repeated for every leg.
	VacationID   string
	VacationName string
	StartDate    string // "2006-01-02", empty when no start date was chosen

	// Leg position, starting at 1.
	Leg int

	// Accommodation fields.
	City                string
	AccommodationName   string
	AccommodationType   string
	AccommodationCost   string
	Days                int
	AccommodationBooked bool

	// Transportation fields.
	Destination          string
	TransportationType   string
	TransportationCost   string
	TransportationBooked bool
}
