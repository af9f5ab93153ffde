package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a scheduled instance of a TripKind that customers can book.
// Trips are immutable once created.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	Kind      TripKind  `json:"kind"`
	Location  uuid.UUID `json:"location_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// TripKind is a category of trip, i.e. a service the company provides.
type TripKind struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Guided       bool      `json:"guided"`
	MealProvided bool      `json:"meal_provided"`
}

// Location is a departure point associated with a Trip.
type Location struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// TimeRange is an inclusive [Start, End] interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// TripFilters narrows a trip query. Each non-nil field adds one constraint;
// a nil field means "do not constrain", not "match null".
type TripFilters struct {
	Kind      *uuid.UUID
	Location  *uuid.UUID
	DateRange *TimeRange // matches trips whose start time falls in the range
}

// IsEmpty reports whether no filter field is set.
func (f TripFilters) IsEmpty() bool {
	return f.Kind == nil && f.Location == nil && f.DateRange == nil
}
