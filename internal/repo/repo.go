// Package repo contains all database access logic for the booking domain.
// It defines the repository contract the service layer depends on and a
// Postgres implementation of it. No business logic lives here, only SQL,
// row-to-aggregate mapping and transaction boundaries.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Accepting it instead of *pgxpool.Pool lets integration tests pass a
// transaction that is rolled back after each test. Begin on a pgx.Tx opens a
// savepoint, so multi-statement writes stay atomic inside a test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BookingRepo persists Booking aggregates together with their participants.
type BookingRepo interface {
	// FindBooking returns the booking with the given id. found is false when
	// no such booking exists; that is not an error.
	FindBooking(ctx context.Context, id uuid.UUID) (b domain.Booking, found bool, err error)

	// FindBookings returns the bookings matching every filter field that is
	// set, ordered by booking id. Empty filters yield an empty result.
	FindBookings(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error)

	// SaveBooking creates or replaces a booking and its participant
	// membership in one transaction. Participant rows are upserted by id.
	SaveBooking(ctx context.Context, b domain.Booking) error

	// DeleteBooking removes a booking, its membership and rental rows.
	// Participant rows are kept. Deleting a missing booking is a no-op.
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

// CustomerRepo persists Customers.
type CustomerRepo interface {
	// FindCustomer returns the customer with the given id, found=false if none.
	FindCustomer(ctx context.Context, id uuid.UUID) (c domain.Customer, found bool, err error)

	// SaveCustomer inserts a customer or overwrites an existing one by id.
	// A taken email fails with domain.ErrConflict.
	SaveCustomer(ctx context.Context, c domain.Customer) error

	// DeleteCustomer removes a customer. Deleting a missing customer is a
	// no-op; deleting one that still has bookings fails with domain.ErrConflict.
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

// TripRepo reads Trips. Trips are immutable and have no write path here.
type TripRepo interface {
	// FindTrip returns the trip with the given id, found=false if none.
	FindTrip(ctx context.Context, id uuid.UUID) (t domain.Trip, found bool, err error)

	// FindTrips returns the trips matching every filter field that is set,
	// ordered by trip id. Empty filters yield an empty result.
	FindTrips(ctx context.Context, filters domain.TripFilters) ([]domain.Trip, error)
}

// RentalRepo persists the equipment rented for a booking.
type RentalRepo interface {
	// FindBookingRentals returns the rentals of a booking. A booking without
	// rentals yields an empty, non-nil Rentals map.
	FindBookingRentals(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error)

	// SaveBookingRentals replaces the full rental set of a booking.
	SaveBookingRentals(ctx context.Context, r domain.BookingRentals) error
}

// Repository is the full persistence contract of the booking domain.
// The service layer depends on this interface; Postgres (via New) and the
// in-memory repotest.Memory are its implementations.
type Repository interface {
	BookingRepo
	CustomerRepo
	TripRepo
	RentalRepo
}

type repository struct {
	BookingRepo
	CustomerRepo
	TripRepo
	RentalRepo
}

// New constructs the Postgres Repository backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func New(db db) Repository {
	return Compose(NewBookingRepo(db), NewCustomerRepo(db), NewTripRepo(db), NewRentalRepo(db))
}

// Compose assembles a Repository from its parts, e.g. to put a cache in
// front of the trip reads.
func Compose(b BookingRepo, c CustomerRepo, t TripRepo, r RentalRepo) Repository {
	return repository{BookingRepo: b, CustomerRepo: c, TripRepo: t, RentalRepo: r}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// rollbackTimeout bounds the rollback issued after a failed write.
const rollbackTimeout = 5 * time.Second

// inTx runs fn inside a transaction on d, or a savepoint when d is itself a
// pgx.Tx, and commits when fn returns nil. The rollback is detached from ctx:
// a request cancelled between statements still undoes the statements that
// already ran and leaves the connection usable.
func inTx(ctx context.Context, d db, fn func(tx pgx.Tx) error) error {
	tx, err := d.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
		defer cancel()
		// No-op once committed.
		_ = tx.Rollback(rbCtx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// execBatch sends b on tx and returns the first statement error, if any.
func execBatch(ctx context.Context, tx pgx.Tx, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}
