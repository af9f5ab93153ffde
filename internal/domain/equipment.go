package domain

import "github.com/google/uuid"

// Equipment is an item included with, or rentable for, a Booking.
type Equipment struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// BookingRentals is the set of equipment rented for one booking, keyed by
// equipment id. Its lifecycle is tied to the booking it references.
type BookingRentals struct {
	BookingID uuid.UUID
	Rentals   map[uuid.UUID]int32
}

// Validate rejects rentals without a booking id or with a nil equipment id.
// Quantities are signed and not range checked.
func (r BookingRentals) Validate() error {
	if r.BookingID == uuid.Nil {
		return validationf("booking id is required")
	}
	for id := range r.Rentals {
		if id == uuid.Nil {
			return validationf("equipment id is required")
		}
	}
	return nil
}
