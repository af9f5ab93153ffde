package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// RentalService manages the equipment rented for a booking.
type RentalService struct {
	bookings repo.BookingRepo
	rentals  repo.RentalRepo
}

// NewRentalService constructs a RentalService backed by the provided repos.
func NewRentalService(bookings repo.BookingRepo, rentals repo.RentalRepo) *RentalService {
	return &RentalService{bookings: bookings, rentals: rentals}
}

// Get returns the rentals of an existing booking.
// Returns domain.ErrNotFound if the booking does not exist.
func (s *RentalService) Get(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error) {
	if err := s.requireBooking(ctx, bookingID, "Get"); err != nil {
		return domain.BookingRentals{}, err
	}
	r, err := s.rentals.FindBookingRentals(ctx, bookingID)
	if err != nil {
		return domain.BookingRentals{}, fmt.Errorf("service.RentalService.Get: %w", err)
	}
	return r, nil
}

// Replace swaps the full rental set of an existing booking for r.
// Returns domain.ErrNotFound if the booking does not exist.
func (s *RentalService) Replace(ctx context.Context, r domain.BookingRentals) (domain.BookingRentals, error) {
	if err := r.Validate(); err != nil {
		return domain.BookingRentals{}, err
	}
	if err := s.requireBooking(ctx, r.BookingID, "Replace"); err != nil {
		return domain.BookingRentals{}, err
	}
	if r.Rentals == nil {
		r.Rentals = map[uuid.UUID]int32{}
	}
	if err := s.rentals.SaveBookingRentals(ctx, r); err != nil {
		return domain.BookingRentals{}, fmt.Errorf("service.RentalService.Replace: %w", err)
	}
	return r, nil
}

func (s *RentalService) requireBooking(ctx context.Context, id uuid.UUID, method string) error {
	_, found, err := s.bookings.FindBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("service.RentalService.%s: %w", method, err)
	}
	if !found {
		return fmt.Errorf("service.RentalService.%s: %w", method, &domain.NotFoundError{Entity: domain.EntityBooking, ID: id})
	}
	return nil
}
