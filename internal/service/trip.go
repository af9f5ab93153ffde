// Package service contains the business logic of the booking backend.
// Services validate inputs, turn absent repository results into
// domain.ErrNotFound and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// TripService serves the read-only trip catalogue.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{trips: r}
}

// Get returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	t, found, err := s.trips.FindTrip(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", &domain.NotFoundError{Entity: domain.EntityTrip, ID: id})
	}
	return t, nil
}

// List returns the trips matching filters. A date range whose end is before
// its start is rejected with domain.ErrValidation.
func (s *TripService) List(ctx context.Context, filters domain.TripFilters) ([]domain.Trip, error) {
	if r := filters.DateRange; r != nil && r.End.Before(r.Start) {
		return nil, fmt.Errorf("%w: date range ends before it starts", domain.ErrValidation)
	}
	trips, err := s.trips.FindTrips(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}
