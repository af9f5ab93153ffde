package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/handler"
)

// The mocks below are test doubles for the handler.*Servicer interfaces.
// Set only the method fields your test needs; calling an unset one panics,
// which flags a handler reaching a service it should not.

type mockBookingServicer struct {
	get    func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	list   func(ctx context.Context, f domain.BookingFilters) ([]domain.Booking, error)
	save   func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBookingServicer) Get(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.get(ctx, id)
}
func (m *mockBookingServicer) List(ctx context.Context, f domain.BookingFilters) ([]domain.Booking, error) {
	return m.list(ctx, f)
}
func (m *mockBookingServicer) Save(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.save(ctx, b)
}
func (m *mockBookingServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockCustomerServicer struct {
	create func(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error)
	get    func(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	edit   func(ctx context.Context, req domain.EditCustomerRequest) (domain.Customer, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCustomerServicer) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	return m.create(ctx, req)
}
func (m *mockCustomerServicer) Get(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	return m.get(ctx, id)
}
func (m *mockCustomerServicer) Edit(ctx context.Context, req domain.EditCustomerRequest) (domain.Customer, error) {
	return m.edit(ctx, req)
}
func (m *mockCustomerServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockTripServicer struct {
	get  func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list func(ctx context.Context, f domain.TripFilters) ([]domain.Trip, error)
}

func (m *mockTripServicer) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, f domain.TripFilters) ([]domain.Trip, error) {
	return m.list(ctx, f)
}

type mockRentalServicer struct {
	get     func(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error)
	replace func(ctx context.Context, r domain.BookingRentals) (domain.BookingRentals, error)
}

func (m *mockRentalServicer) Get(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error) {
	return m.get(ctx, bookingID)
}
func (m *mockRentalServicer) Replace(ctx context.Context, r domain.BookingRentals) (domain.BookingRentals, error) {
	return m.replace(ctx, r)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.BookingServicer  = (*mockBookingServicer)(nil)
	_ handler.CustomerServicer = (*mockCustomerServicer)(nil)
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.RentalServicer   = (*mockRentalServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// the same way main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, logger).Handler()
}

// serve sends one request through h and returns the recorded response.
func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func tripFixture() domain.Trip {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID: uuid.New(),
		Kind: domain.TripKind{
			ID:          uuid.New(),
			Name:        "Sea kayak day",
			Description: "Full day on the water",
			Guided:      true,
		},
		Location:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
	}
}

func bookingFixture() domain.Booking {
	waiver := uuid.New()
	return domain.Booking{
		ID:       uuid.New(),
		Customer: uuid.New(),
		Trip:     uuid.New(),
		Participants: []domain.Participant{
			{ID: uuid.New(), Name: "Ada", DOB: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC), Waiver: &waiver},
			{ID: uuid.New(), Name: "Grace", DOB: time.Date(1985, 12, 9, 0, 0, 0, 0, time.UTC), Notes: "vegetarian"},
		},
	}
}

func customerFixture(t *testing.T) domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(domain.CreateCustomerRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Phone: "+44 20 7946 0000",
	})
	require.NoError(t, err)
	return c
}

func notFound(entity domain.Entity, id uuid.UUID) error {
	return &domain.NotFoundError{Entity: entity, ID: id}
}

func conflict(entity domain.Entity) error {
	return &domain.StoreError{
		Entity: entity,
		Op:     "repo.Test",
		Kind:   domain.ErrConflict,
		Err:    errors.New(`duplicate key value violates unique constraint "customer_email_key"`),
	}
}
