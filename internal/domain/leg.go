package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccommodationType is the closed set of accommodation kinds.
type AccommodationType string

const (
	AccommodationHostel AccommodationType = "Hostel"
	AccommodationHotel  AccommodationType = "Hotel"
	AccommodationAirBnB AccommodationType = "AirBnB"
)

// AccommodationTypes lists every valid AccommodationType in display order.
var AccommodationTypes = []AccommodationType{AccommodationHostel, AccommodationHotel, AccommodationAirBnB}

// ParseAccommodationType returns the AccommodationType spelled exactly s.
func ParseAccommodationType(s string) (AccommodationType, error) {
	for _, t := range AccommodationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown accommodation type %q", ErrValidation, s)
}

// TransportationType is the closed set of transportation kinds.
// TransportationUnset is only carried by the placeholder created with a leg.
type TransportationType string

const (
	TransportationUnset TransportationType = ""
	TransportationPlane TransportationType = "Plane"
	TransportationTrain TransportationType = "Train"
	TransportationBus   TransportationType = "Bus"
)

// TransportationTypes lists every selectable TransportationType.
var TransportationTypes = []TransportationType{TransportationPlane, TransportationTrain, TransportationBus}

// ParseTransportationType returns the TransportationType spelled exactly s.
// The empty string is not accepted.
func ParseTransportationType(s string) (TransportationType, error) {
	for _, t := range TransportationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown transportation type %q", ErrValidation, s)
}

// Accommodation is where the traveller stays during a leg.
type Accommodation struct {
	ID      uuid.UUID
	City    string
	Cost    decimal.Decimal
	Type    AccommodationType
	Name    string
	Days    int
	Website string
	Booked  bool
	Notes   string
}

// Transportation is how the traveller reaches the next leg.
type Transportation struct {
	ID          uuid.UUID
	Destination string
	Type        TransportationType
	Cost        decimal.Decimal
	Website     string
	Notes       string
	Booked      bool
}

// PlaceholderTransportation is the empty booking created alongside every new
// leg; the traveller fills it in later.
func PlaceholderTransportation() Transportation {
	return Transportation{Type: TransportationUnset, Cost: decimal.Zero}
}

// Leg pairs one accommodation with one transportation booking.
// Order is the leg's position in its vacation's leg list.
type Leg struct {
	ID             uuid.UUID
	Order          int
	Accommodation  Accommodation
	Transportation Transportation
}

// AccommodationPatch is a validated partial update of an Accommodation.
// Nil fields are left unchanged.
type AccommodationPatch struct {
	City    *string
	Cost    *decimal.Decimal
	Type    *AccommodationType
	Name    *string
	Days    *int
	Website *string
	Booked  *bool
	Notes   *string
}

// NewAccommodation builds an Accommodation from the patch, using zero values
// for absent fields.
func (p AccommodationPatch) NewAccommodation() Accommodation {
	a := Accommodation{Cost: decimal.Zero}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Cost != nil {
		a.Cost = *p.Cost
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Days != nil {
		a.Days = *p.Days
	}
	if p.Website != nil {
		a.Website = *p.Website
	}
	if p.Booked != nil {
		a.Booked = *p.Booked
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	return a
}

// TransportationPatch is a validated partial update of a Transportation.
// Nil fields are left unchanged.
type TransportationPatch struct {
	Destination *string
	Type        *TransportationType
	Cost        *decimal.Decimal
	Website     *string
	Notes       *string
	Booked      *bool
}
