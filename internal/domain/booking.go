package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Booking is the intent of a group of Participants to take part in a Trip.
// It is the aggregate root: participants are reached only through it, and the
// order of Participants is significant and preserved by storage.
type Booking struct {
	ID           uuid.UUID     `json:"id"`
	Customer     uuid.UUID     `json:"customer_id"`
	Trip         uuid.UUID     `json:"trip_id"`
	Participants []Participant `json:"participants"`
}

// Participant is a person taking part in a trip as a member of a Booking.
// Participant rows outlive the bookings that reference them.
type Participant struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	DOB    time.Time  `json:"dob"`
	Notes  string     `json:"notes"`
	Waiver *uuid.UUID `json:"waiver_id,omitempty"` // nil when no waiver is on file
}

// Waiver is a signed release of liability. It is referenced by participants
// but never written through the booking repository.
type Waiver struct {
	ID      uuid.UUID
	Content string
}

// NewBooking validates the parts of a booking and returns it.
func NewBooking(id, customer, trip uuid.UUID, participants []Participant) (Booking, error) {
	b := Booking{ID: id, Customer: customer, Trip: trip, Participants: participants}
	if err := b.Validate(); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Validate checks the aggregate invariants that storage cannot represent
// otherwise: a booking has ids, at least one participant, and every
// participant has an id and a name.
func (b Booking) Validate() error {
	switch {
	case b.ID == uuid.Nil:
		return validationf("booking id is required")
	case b.Customer == uuid.Nil:
		return validationf("customer id is required")
	case b.Trip == uuid.Nil:
		return validationf("trip id is required")
	case len(b.Participants) == 0:
		return validationf("a booking needs at least one participant")
	}
	for i, p := range b.Participants {
		if p.ID == uuid.Nil {
			return validationf("participant %d: id is required", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return validationf("participant %d: name is required", i)
		}
	}
	return nil
}

// BookingFilters narrows a booking query. Each non-nil field adds one
// constraint; a nil field means "do not constrain".
type BookingFilters struct {
	Customer    *uuid.UUID
	Trip        *uuid.UUID
	Participant *uuid.UUID // bookings that include this participant
}

// IsEmpty reports whether no filter field is set.
func (f BookingFilters) IsEmpty() bool {
	return f.Customer == nil && f.Trip == nil && f.Participant == nil
}
