package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// Rental is one equipment line of a booking.
type Rental struct {
	EquipmentID openapi_types.UUID `json:"equipment_id"`
	Quantity    int32              `json:"quantity"`
}

// BookingRentals is the body of GET and PUT /api/bookings/{id}/rentals.
type BookingRentals struct {
	BookingID openapi_types.UUID `json:"booking_id"`
	Rentals   []Rental           `json:"rentals"`
}

// PutRentalsRequest is the body of PUT /api/bookings/{id}/rentals.
// It replaces the whole rental set; an empty list clears it.
type PutRentalsRequest struct {
	Rentals []Rental `json:"rentals"`
}

// GetBookingRentals handles GET /api/bookings/{id}/rentals.
func (s *Server) GetBookingRentals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rentals, err := s.rentals.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalsToResponse(rentals))
}

// PutBookingRentals handles PUT /api/bookings/{id}/rentals.
func (s *Server) PutBookingRentals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body PutRentalsRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	in, err := requestToRentals(id, body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	saved, err := s.rentals.Replace(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalsToResponse(saved))
}

// requestToRentals rejects an equipment id listed twice, since the set is
// keyed by equipment.
func requestToRentals(bookingID uuid.UUID, body PutRentalsRequest) (domain.BookingRentals, error) {
	out := domain.BookingRentals{BookingID: bookingID, Rentals: make(map[uuid.UUID]int32, len(body.Rentals))}
	for _, line := range body.Rentals {
		if _, dup := out.Rentals[line.EquipmentID]; dup {
			return domain.BookingRentals{}, fmt.Errorf("%w: equipment %s listed more than once", domain.ErrValidation, line.EquipmentID)
		}
		out.Rentals[line.EquipmentID] = line.Quantity
	}
	return out, nil
}

// rentalsToResponse lists rentals ordered by equipment id so responses are stable.
func rentalsToResponse(r domain.BookingRentals) BookingRentals {
	resp := BookingRentals{BookingID: r.BookingID, Rentals: make([]Rental, 0, len(r.Rentals))}
	for id, qty := range r.Rentals {
		resp.Rentals = append(resp.Rentals, Rental{EquipmentID: id, Quantity: qty})
	}
	slices.SortFunc(resp.Rentals, func(a, b Rental) int {
		return bytes.Compare(a.EquipmentID[:], b.EquipmentID[:])
	})
	return resp
}
