package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// selectBookingRows yields one row per (booking, participant) pair. The inner
// joins mean a booking without membership rows is never returned.
const selectBookingRows = `
		SELECT b.booking_id, b.customer_id, b.trip_id,
		       p.participant_id, p.name, p.dob, p.notes, pw.waiver_id
		FROM booking b
		JOIN booking_participant bp ON bp.booking_id = b.booking_id
		JOIN participant p ON p.participant_id = bp.participant_id
		LEFT JOIN participant_waiver pw ON pw.participant_id = p.participant_id`

const bookingRowOrder = "b.booking_id, bp.position"

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

// FindBooking is the grouped booking query narrowed to a single booking id.
func (r *pgBookingRepo) FindBooking(ctx context.Context, id uuid.UUID) (domain.Booking, bool, error) {
	q, args := compileQuery(selectBookingRows, []predicate{eq("b.booking_id", id)}, bookingRowOrder)

	bookings, err := r.queryBookings(ctx, q, args)
	if err != nil {
		return domain.Booking{}, false, storeError(domain.EntityBooking, "repo.BookingRepo.FindBooking", err)
	}
	if len(bookings) == 0 {
		return domain.Booking{}, false, nil
	}
	return bookings[0], true, nil
}

// FindBookings returns the bookings matching all set filter fields.
// Empty filters return an empty result without querying.
func (r *pgBookingRepo) FindBookings(ctx context.Context, filters domain.BookingFilters) ([]domain.Booking, error) {
	if filters.IsEmpty() {
		return []domain.Booking{}, nil
	}

	q, args := compileQuery(selectBookingRows, bookingPredicates(filters), bookingRowOrder)

	bookings, err := r.queryBookings(ctx, q, args)
	if err != nil {
		return nil, storeError(domain.EntityBooking, "repo.BookingRepo.FindBookings", err)
	}
	return bookings, nil
}

func (r *pgBookingRepo) queryBookings(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []bookingRow
	for rows.Next() {
		row, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return groupBookings(flat), nil
}

// SaveBooking writes the booking in four dependent steps inside one
// transaction: upsert the header, upsert every participant, clear the
// membership rows, then re-insert membership in participant order.
// inTx rolls back on any error, panic or context cancellation.
func (r *pgBookingRepo) SaveBooking(ctx context.Context, b domain.Booking) error {
	const op = "repo.BookingRepo.SaveBooking"

	if err := b.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const upsertHeader = `
			INSERT INTO booking (booking_id, customer_id, trip_id)
			VALUES (@booking_id, @customer_id, @trip_id)
			ON CONFLICT (booking_id) DO UPDATE
			SET customer_id = EXCLUDED.customer_id,
			    trip_id     = EXCLUDED.trip_id`

		_, err := tx.Exec(ctx, upsertHeader, pgx.NamedArgs{
			"booking_id":  b.ID,
			"customer_id": b.Customer,
			"trip_id":     b.Trip,
		})
		if err != nil {
			return fmt.Errorf("upsert header: %w", err)
		}

		const upsertParticipant = `
			INSERT INTO participant (participant_id, name, dob, notes)
			VALUES (@participant_id, @name, @dob, @notes)
			ON CONFLICT (participant_id) DO UPDATE
			SET name  = EXCLUDED.name,
			    dob   = EXCLUDED.dob,
			    notes = EXCLUDED.notes`

		participants := &pgx.Batch{}
		for _, p := range b.Participants {
			participants.Queue(upsertParticipant, pgx.NamedArgs{
				"participant_id": p.ID,
				"name":           p.Name,
				"dob":            p.DOB,
				"notes":          p.Notes,
			})
		}
		if err := execBatch(ctx, tx, participants); err != nil {
			return fmt.Errorf("upsert participants: %w", err)
		}

		const clearMembership = `DELETE FROM booking_participant WHERE booking_id = @booking_id`

		if _, err := tx.Exec(ctx, clearMembership, pgx.NamedArgs{"booking_id": b.ID}); err != nil {
			return fmt.Errorf("clear membership: %w", err)
		}

		const insertMembership = `
			INSERT INTO booking_participant (booking_id, participant_id, position)
			VALUES (@booking_id, @participant_id, @position)`

		membership := &pgx.Batch{}
		for i, p := range b.Participants {
			membership.Queue(insertMembership, pgx.NamedArgs{
				"booking_id":     b.ID,
				"participant_id": p.ID,
				"position":       i,
			})
		}
		if err := execBatch(ctx, tx, membership); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return storeError(domain.EntityBooking, op, err)
	}
	return nil
}

// DeleteBooking removes rentals, membership and the header row in one
// transaction. Participant rows are never deleted.
func (r *pgBookingRepo) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	steps := []string{
		`DELETE FROM booking_rental WHERE booking_id = @booking_id`,
		`DELETE FROM booking_participant WHERE booking_id = @booking_id`,
		`DELETE FROM booking WHERE booking_id = @booking_id`,
	}

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, q := range steps {
			if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"booking_id": id}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storeError(domain.EntityBooking, "repo.BookingRepo.DeleteBooking", err)
	}
	return nil
}
