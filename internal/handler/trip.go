package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// TripKind is the API representation of domain.TripKind.
type TripKind struct {
	ID           openapi_types.UUID `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Guided       bool               `json:"guided"`
	MealProvided bool               `json:"meal_provided"`
}

// Trip is the API representation of domain.Trip.
type Trip struct {
	ID         openapi_types.UUID `json:"id"`
	Kind       TripKind           `json:"kind"`
	LocationID openapi_types.UUID `json:"location_id"`
	StartTime  time.Time          `json:"start_time"`
	EndTime    time.Time          `json:"end_time"`
}

// TripList is the body of GET /api/trips.
type TripList struct {
	Data []Trip `json:"data"`
}

// ListTrips handles GET /api/trips.
// Supports ?kind=, ?location= and a ?from=&to= date pair; at least one is
// needed for a non-empty result. The date range covers whole days: a trip
// starting any time on the "to" day matches.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		filters  domain.TripFilters
		from, to *openapi_types.Date
	)
	for _, p := range []struct {
		name string
		dest any
	}{
		{"kind", &filters.Kind},
		{"location", &filters.Location},
		{"from", &from},
		{"to", &to},
	} {
		if err := queryParam(r, p.name, p.dest); err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
			return
		}
	}

	switch {
	case from != nil && to != nil:
		filters.DateRange = &domain.TimeRange{
			Start: from.Time,
			End:   to.Time.AddDate(0, 0, 1).Add(-time.Nanosecond),
		}
	case from != nil || to != nil:
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    codeValidation,
			Message: "from and to must be given together",
		}})
		return
	}

	trips, err := s.trips.List(r.Context(), filters)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{Data: data})
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// tripToResponse converts a domain.Trip into its API representation.
func tripToResponse(t domain.Trip) Trip {
	return Trip{
		ID: t.ID,
		Kind: TripKind{
			ID:           t.Kind.ID,
			Name:         t.Kind.Name,
			Description:  t.Kind.Description,
			Guided:       t.Kind.Guided,
			MealProvided: t.Kind.MealProvided,
		},
		LocationID: t.Location,
		StartTime:  t.StartTime,
		EndTime:    t.EndTime,
	}
}
