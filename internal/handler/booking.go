package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// Participant is the API representation of domain.Participant.
type Participant struct {
	ID       openapi_types.UUID  `json:"id"`
	Name     string              `json:"name"`
	DOB      openapi_types.Date  `json:"dob"`
	Notes    string              `json:"notes"`
	WaiverID *openapi_types.UUID `json:"waiver_id,omitempty"`
}

// Booking is the API representation of domain.Booking.
type Booking struct {
	ID           openapi_types.UUID `json:"id"`
	CustomerID   openapi_types.UUID `json:"customer_id"`
	TripID       openapi_types.UUID `json:"trip_id"`
	Participants []Participant      `json:"participants"`
}

// BookingList is the body of GET /api/bookings.
type BookingList struct {
	Data []Booking `json:"data"`
}

// ParticipantInput is one participant of a PUT /api/bookings/{id} body.
// Waivers are attached elsewhere and cannot be set through a booking.
type ParticipantInput struct {
	ID    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	DOB   openapi_types.Date `json:"dob"`
	Notes string             `json:"notes"`
}

// PutBookingRequest is the body of PUT /api/bookings/{id}.
type PutBookingRequest struct {
	CustomerID   openapi_types.UUID `json:"customer_id"`
	TripID       openapi_types.UUID `json:"trip_id"`
	Participants []ParticipantInput `json:"participants"`
}

// ListBookings handles GET /api/bookings.
// Supports ?customer=, ?trip= and ?participant=; set filters are combined
// with AND and no filter at all yields an empty list.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	var filters domain.BookingFilters
	for _, p := range []struct {
		name string
		dest any
	}{
		{"customer", &filters.Customer},
		{"trip", &filters.Trip},
		{"participant", &filters.Participant},
	} {
		if err := queryParam(r, p.name, p.dest); err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
			return
		}
	}

	bookings, err := s.bookings.List(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Booking, len(bookings))
	for i, b := range bookings {
		data[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, BookingList{Data: data})
}

// GetBooking handles GET /api/bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := s.bookings.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// PutBooking handles PUT /api/bookings/{id}. It creates the booking or
// replaces its customer, trip and participant list.
func (s *Server) PutBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body PutBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	saved, err := s.bookings.Save(r.Context(), requestToBooking(id, body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(saved))
}

// DeleteBooking handles DELETE /api/bookings/{id}. Deleting a missing
// booking is not an error.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.bookings.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToBooking builds a domain.Booking from a PUT body, taking the ID
// from the path.
func requestToBooking(id openapi_types.UUID, body PutBookingRequest) domain.Booking {
	b := domain.Booking{
		ID:           id,
		Customer:     body.CustomerID,
		Trip:         body.TripID,
		Participants: make([]domain.Participant, len(body.Participants)),
	}
	for i, p := range body.Participants {
		b.Participants[i] = domain.Participant{
			ID:    p.ID,
			Name:  p.Name,
			DOB:   p.DOB.Time,
			Notes: p.Notes,
		}
	}
	return b
}

// bookingToResponse converts a domain.Booking into its API representation.
func bookingToResponse(b domain.Booking) Booking {
	resp := Booking{
		ID:           b.ID,
		CustomerID:   b.Customer,
		TripID:       b.Trip,
		Participants: make([]Participant, len(b.Participants)),
	}
	for i, p := range b.Participants {
		resp.Participants[i] = Participant{
			ID:       p.ID,
			Name:     p.Name,
			DOB:      openapi_types.Date{Time: p.DOB},
			Notes:    p.Notes,
			WaiverID: p.Waiver,
		}
	}
	return resp
}
