package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// pgRentalRepo is the Postgres implementation of RentalRepo.
type pgRentalRepo struct {
	db db
}

// NewRentalRepo constructs a RentalRepo backed by the provided db connection.
func NewRentalRepo(db db) RentalRepo {
	return &pgRentalRepo{db: db}
}

// FindBookingRentals returns every equipment rental of a booking.
func (r *pgRentalRepo) FindBookingRentals(ctx context.Context, bookingID uuid.UUID) (domain.BookingRentals, error) {
	const (
		op = "repo.RentalRepo.FindBookingRentals"
		q  = `
		SELECT equipment_id, quantity
		FROM booking_rental
		WHERE booking_id = @booking_id
		ORDER BY equipment_id`
	)

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"booking_id": bookingID})
	if err != nil {
		return domain.BookingRentals{}, storeError(domain.EntityEquipment, op, err)
	}
	defer rows.Close()

	out := domain.BookingRentals{BookingID: bookingID, Rentals: map[uuid.UUID]int32{}}
	for rows.Next() {
		var (
			id  pgtype.UUID
			qty int32
		)
		if err := rows.Scan(&id, &qty); err != nil {
			return domain.BookingRentals{}, storeError(domain.EntityEquipment, op, fmt.Errorf("scan: %w", err))
		}
		out.Rentals[uuid.UUID(id.Bytes)] = qty
	}
	if err := rows.Err(); err != nil {
		return domain.BookingRentals{}, storeError(domain.EntityEquipment, op, fmt.Errorf("rows: %w", err))
	}
	return out, nil
}

// SaveBookingRentals replaces the rental set of a booking in one transaction.
func (r *pgRentalRepo) SaveBookingRentals(ctx context.Context, rentals domain.BookingRentals) error {
	const op = "repo.RentalRepo.SaveBookingRentals"

	if err := rentals.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		const clearRentals = `DELETE FROM booking_rental WHERE booking_id = @booking_id`

		if _, err := tx.Exec(ctx, clearRentals, pgx.NamedArgs{"booking_id": rentals.BookingID}); err != nil {
			return fmt.Errorf("clear rentals: %w", err)
		}

		const insertRental = `
			INSERT INTO booking_rental (booking_id, equipment_id, quantity)
			VALUES (@booking_id, @equipment_id, @quantity)`

		batch := &pgx.Batch{}
		for equipmentID, qty := range rentals.Rentals {
			batch.Queue(insertRental, pgx.NamedArgs{
				"booking_id":   rentals.BookingID,
				"equipment_id": equipmentID,
				"quantity":     qty,
			})
		}
		if err := execBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("insert rentals: %w", err)
		}
		return nil
	})
	if err != nil {
		return storeError(domain.EntityEquipment, op, err)
	}
	return nil
}
