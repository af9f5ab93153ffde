// Package handler implements the HTTP API of the booking backend.
// All handlers are methods on Server. They are split into domain-specific
// files (booking.go, customer.go, trip.go, ...) but share the same Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// The Servicer interfaces list the business operations the handlers depend
// on. Defining them here, in the consumer package, lets handler tests inject
// mocks without touching the database or the service layer.

type BookingServicer interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error)
	Save(ctx context.Context, b domain.Booking) (domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerServicer interface {
	Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	Edit(ctx context.Context, req domain.EditCustomerRequest) (domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TripServicer interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, filters domain.TripFilters) ([]domain.Trip, error)
}

type RentalServicer interface {
	Get(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error)
	Replace(ctx context.Context, r domain.BookingRentals) (domain.BookingRentals, error)
}

// Services groups the dependencies of Server. Nil fields are allowed when a
// test only exercises part of the API.
type Services struct {
	Bookings  BookingServicer
	Customers CustomerServicer
	Trips     TripServicer
	Rentals   RentalServicer
}

// Server serves every API endpoint.
type Server struct {
	bookings  BookingServicer
	customers CustomerServicer
	trips     TripServicer
	rentals   RentalServicer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	return &Server{
		bookings:  svc.Bookings,
		customers: svc.Customers,
		trips:     svc.Trips,
		rentals:   svc.Rentals,
		logger:    logger,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, slog.Default())
}

// Routes registers every endpoint on a new chi router.
// Middleware is the caller's concern; main.go wraps the result.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", s.ListBookings)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetBooking)
				r.Put("/", s.PutBooking)
				r.Delete("/", s.DeleteBooking)
				r.Get("/rentals", s.GetBookingRentals)
				r.Put("/rentals", s.PutBookingRentals)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", s.CreateCustomer)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetCustomer)
				r.Patch("/", s.EditCustomer)
				r.Delete("/", s.DeleteCustomer)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Get("/{id}/manifest", s.GetTripManifest)
		})
	})

	return r
}

// Handler returns Routes as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.Routes()
}
