package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo/repotest"
	"github.com/tide-outfitters/tide/backend/internal/service"
)

func validBooking() domain.Booking {
	return domain.Booking{
		ID:       uuid.New(),
		Customer: uuid.New(),
		Trip:     uuid.New(),
		Participants: []domain.Participant{
			{ID: uuid.New(), Name: "Ana", DOB: time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

// ---- Get -------------------------------------------------------------------

func TestBookingService_Get_NotFound(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		findBooking: func(context.Context, uuid.UUID) (domain.Booking, bool, error) {
			return domain.Booking{}, false, nil
		},
	}, nil, nil)

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_Get_OK(t *testing.T) {
	want := validBooking()
	svc := service.NewBookingService(&mockBookingRepo{
		findBooking: func(context.Context, uuid.UUID) (domain.Booking, bool, error) {
			return want, true, nil
		},
	}, nil, nil)

	got, err := svc.Get(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ---- List ------------------------------------------------------------------

func TestBookingService_List_NilBecomesEmpty(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		findBookings: func(context.Context, domain.BookingFilters) ([]domain.Booking, error) {
			return nil, nil
		},
	}, nil, nil)

	got, err := svc.List(context.Background(), domain.BookingFilters{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Save ------------------------------------------------------------------

func TestBookingService_Save_ReturnsStoredBooking(t *testing.T) {
	input := validBooking()
	waiver := uuid.New()
	stored := input
	stored.Participants = []domain.Participant{input.Participants[0]}
	stored.Participants[0].Waiver = &waiver

	var saved domain.Booking
	svc := service.NewBookingService(&mockBookingRepo{
		saveBooking: func(_ context.Context, b domain.Booking) error {
			saved = b
			return nil
		},
		findBooking: func(_ context.Context, id uuid.UUID) (domain.Booking, bool, error) {
			assert.Equal(t, input.ID, id)
			return stored, true, nil
		},
	}, existingCustomers(), existingTrips())

	got, err := svc.Save(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input, saved)
	assert.Equal(t, stored, got)
	require.NotNil(t, got.Participants[0].Waiver)
	assert.Equal(t, waiver, *got.Participants[0].Waiver)
}

func TestBookingService_Save_DeletedBeforeReread(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		saveBooking: func(context.Context, domain.Booking) error { return nil },
		findBooking: func(context.Context, uuid.UUID) (domain.Booking, bool, error) {
			return domain.Booking{}, false, nil
		},
	}, existingCustomers(), existingTrips())

	_, err := svc.Save(context.Background(), validBooking())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "booking")
}

func TestBookingService_Save_RereadFailurePropagates(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		saveBooking: func(context.Context, domain.Booking) error { return nil },
		findBooking: func(context.Context, uuid.UUID) (domain.Booking, bool, error) {
			return domain.Booking{}, false, storeFailure(domain.EntityBooking)
		},
	}, existingCustomers(), existingTrips())

	_, err := svc.Save(context.Background(), validBooking())

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestBookingService_Save_InvalidSkipsStorage(t *testing.T) {
	// Empty mocks panic if called.
	svc := service.NewBookingService(&mockBookingRepo{}, &mockCustomerRepo{}, &mockTripRepo{})

	b := validBooking()
	b.Participants = nil
	_, err := svc.Save(context.Background(), b)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_Save_MissingCustomer(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{}, &mockCustomerRepo{
		findCustomer: func(context.Context, uuid.UUID) (domain.Customer, bool, error) {
			return domain.Customer{}, false, nil
		},
	}, &mockTripRepo{})

	_, err := svc.Save(context.Background(), validBooking())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "customer")
}

func TestBookingService_Save_MissingTrip(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{}, existingCustomers(), missingTrips())

	_, err := svc.Save(context.Background(), validBooking())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "trip")
}

func TestBookingService_Save_ConflictPropagates(t *testing.T) {
	svc := service.NewBookingService(&mockBookingRepo{
		saveBooking: func(context.Context, domain.Booking) error {
			return &domain.StoreError{Entity: domain.EntityBooking, Op: "test", Kind: domain.ErrConflict, Err: context.Canceled}
		},
	}, existingCustomers(), existingTrips())

	_, err := svc.Save(context.Background(), validBooking())

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, domain.EntityBooking, storeErr.Entity)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- against the in-memory repository --------------------------------------

func TestBookingService_Memory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	mem := repotest.NewMemory()
	customers := service.NewCustomerService(mem)
	bookings := service.NewBookingService(mem, mem, mem)

	c, err := customers.Create(ctx, domain.CreateCustomerRequest{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"})
	require.NoError(t, err)
	trip := domain.Trip{ID: uuid.New(), StartTime: time.Now().UTC(), EndTime: time.Now().UTC().Add(time.Hour)}
	mem.AddTrip(trip)

	b := validBooking()
	b.Customer, b.Trip = c.ID, trip.ID
	_, err = bookings.Save(ctx, b)
	require.NoError(t, err)

	got, err := bookings.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	listed, err := bookings.List(ctx, domain.BookingFilters{Trip: &trip.ID})
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{b}, listed)

	require.ErrorIs(t, customers.Delete(ctx, c.ID), domain.ErrConflict, "customer still has a booking")

	require.NoError(t, bookings.Delete(ctx, b.ID))
	_, err = bookings.Get(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, customers.Delete(ctx, c.ID))
}

func TestBookingService_Memory_ResaveKeepsWaiverOnFile(t *testing.T) {
	ctx := context.Background()
	mem := repotest.NewMemory()
	customers := service.NewCustomerService(mem)
	bookings := service.NewBookingService(mem, mem, mem)

	c, err := customers.Create(ctx, domain.CreateCustomerRequest{Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0101"})
	require.NoError(t, err)
	trip := domain.Trip{ID: uuid.New(), StartTime: time.Now().UTC(), EndTime: time.Now().UTC().Add(time.Hour)}
	mem.AddTrip(trip)

	b := validBooking()
	b.Customer, b.Trip = c.ID, trip.ID
	_, err = bookings.Save(ctx, b)
	require.NoError(t, err)

	w := domain.Waiver{ID: uuid.New(), Content: "I accept the risks"}
	mem.AttachWaiver(b.Participants[0].ID, w)

	// The client sends the participant back without a waiver id.
	b.Participants[0].Notes = "x"
	saved, err := bookings.Save(ctx, b)
	require.NoError(t, err)

	require.NotNil(t, saved.Participants[0].Waiver, "saved booking carries the waiver on file")
	assert.Equal(t, w.ID, *saved.Participants[0].Waiver)
	assert.Equal(t, "x", saved.Participants[0].Notes)

	got, err := bookings.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, got, saved)
}
