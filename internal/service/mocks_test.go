package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field: set only the ones your test needs.
// Calling an unset field panics, which fails the test loudly.

type mockBookingRepo struct {
	findBooking   func(ctx context.Context, id uuid.UUID) (domain.Booking, bool, error)
	findBookings  func(ctx context.Context, f domain.BookingFilters) ([]domain.Booking, error)
	saveBooking   func(ctx context.Context, b domain.Booking) error
	deleteBooking func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingRepo) FindBooking(ctx context.Context, id uuid.UUID) (domain.Booking, bool, error) {
	return m.findBooking(ctx, id)
}
func (m *mockBookingRepo) FindBookings(ctx context.Context, f domain.BookingFilters) ([]domain.Booking, error) {
	return m.findBookings(ctx, f)
}
func (m *mockBookingRepo) SaveBooking(ctx context.Context, b domain.Booking) error {
	return m.saveBooking(ctx, b)
}
func (m *mockBookingRepo) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	return m.deleteBooking(ctx, id)
}

type mockCustomerRepo struct {
	findCustomer   func(ctx context.Context, id uuid.UUID) (domain.Customer, bool, error)
	saveCustomer   func(ctx context.Context, c domain.Customer) error
	deleteCustomer func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCustomerRepo) FindCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, bool, error) {
	return m.findCustomer(ctx, id)
}
func (m *mockCustomerRepo) SaveCustomer(ctx context.Context, c domain.Customer) error {
	return m.saveCustomer(ctx, c)
}
func (m *mockCustomerRepo) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return m.deleteCustomer(ctx, id)
}

type mockTripRepo struct {
	findTrip  func(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error)
	findTrips func(ctx context.Context, f domain.TripFilters) ([]domain.Trip, error)
}

func (m *mockTripRepo) FindTrip(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	return m.findTrip(ctx, id)
}
func (m *mockTripRepo) FindTrips(ctx context.Context, f domain.TripFilters) ([]domain.Trip, error) {
	return m.findTrips(ctx, f)
}

type mockRentalRepo struct {
	findBookingRentals func(ctx context.Context, id uuid.UUID) (domain.BookingRentals, error)
	saveBookingRentals func(ctx context.Context, r domain.BookingRentals) error
}

func (m *mockRentalRepo) FindBookingRentals(ctx context.Context, id uuid.UUID) (domain.BookingRentals, error) {
	return m.findBookingRentals(ctx, id)
}
func (m *mockRentalRepo) SaveBookingRentals(ctx context.Context, r domain.BookingRentals) error {
	return m.saveBookingRentals(ctx, r)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.BookingRepo  = (*mockBookingRepo)(nil)
	_ repo.CustomerRepo = (*mockCustomerRepo)(nil)
	_ repo.TripRepo     = (*mockTripRepo)(nil)
	_ repo.RentalRepo   = (*mockRentalRepo)(nil)
)

// existingCustomers and existingTrips answer every lookup with found=true.
func existingCustomers() *mockCustomerRepo {
	return &mockCustomerRepo{
		findCustomer: func(_ context.Context, id uuid.UUID) (domain.Customer, bool, error) {
			return domain.Customer{ID: id}, true, nil
		},
	}
}

func existingTrips() *mockTripRepo {
	return &mockTripRepo{
		findTrip: func(_ context.Context, id uuid.UUID) (domain.Trip, bool, error) {
			return domain.Trip{ID: id}, true, nil
		},
	}
}

func missingTrips() *mockTripRepo {
	return &mockTripRepo{
		findTrip: func(context.Context, uuid.UUID) (domain.Trip, bool, error) {
			return domain.Trip{}, false, nil
		},
	}
}

func storeFailure(entity domain.Entity) error {
	return &domain.StoreError{Entity: entity, Op: "test", Kind: domain.ErrUnavailable, Err: context.DeadlineExceeded}
}
