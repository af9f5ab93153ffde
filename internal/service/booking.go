package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// BookingService implements business logic for Booking operations.
// It holds the customer and trip repos because saving a booking requires
// verifying that both referenced records exist.
type BookingService struct {
	bookings  repo.BookingRepo
	customers repo.CustomerRepo
	trips     repo.TripRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(bookings repo.BookingRepo, customers repo.CustomerRepo, trips repo.TripRepo) *BookingService {
	return &BookingService{bookings: bookings, customers: customers, trips: trips}
}

// Get returns a single booking by ID with its participants in booking order.
// Returns domain.ErrNotFound if no booking with that ID exists.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	b, found, err := s.bookings.FindBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	if !found {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Get: %w", &domain.NotFoundError{Entity: domain.EntityBooking, ID: id})
	}
	return b, nil
}

// List returns the bookings matching every set filter field.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) List(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error) {
	bookings, err := s.bookings.FindBookings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.List: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// Save validates the booking, verifies its customer and trip exist, then
// creates or replaces it and returns it as stored. Waiver ids come from the
// store, not from the input.
// Returns domain.ErrValidation if the booking violates its invariants.
// Returns domain.ErrNotFound if the customer or trip does not exist.
func (s *BookingService) Save(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if err := b.Validate(); err != nil {
		return domain.Booking{}, err
	}

	_, found, err := s.customers.FindCustomer(ctx, b.Customer)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", err)
	}
	if !found {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", &domain.NotFoundError{Entity: domain.EntityCustomer, ID: b.Customer})
	}

	_, found, err = s.trips.FindTrip(ctx, b.Trip)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", err)
	}
	if !found {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", &domain.NotFoundError{Entity: domain.EntityTrip, ID: b.Trip})
	}

	if err := s.bookings.SaveBooking(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", err)
	}

	stored, found, err := s.bookings.FindBooking(ctx, b.ID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", err)
	}
	if !found {
		// Deleted by a concurrent request between the write and the read.
		return domain.Booking{}, fmt.Errorf("service.BookingService.Save: %w", &domain.NotFoundError{Entity: domain.EntityBooking, ID: b.ID})
	}
	return stored, nil
}

// Delete removes a booking and its rentals. Deleting a missing booking succeeds.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	return nil
}
