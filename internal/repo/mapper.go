package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// bookingRow is one (booking, participant) row of the booking join query.
type bookingRow struct {
	BookingID     uuid.UUID
	CustomerID    uuid.UUID
	TripID        uuid.UUID
	ParticipantID uuid.UUID
	Name          string
	DOB           time.Time
	Notes         string
	WaiverID      *uuid.UUID // nil when the left join found no waiver
}

func (r bookingRow) participant() domain.Participant {
	return domain.Participant{
		ID:     r.ParticipantID,
		Name:   r.Name,
		DOB:    r.DOB,
		Notes:  r.Notes,
		Waiver: r.WaiverID,
	}
}

// scanBookingRow maps one row of selectBookingRows.
func scanBookingRow(s scanner) (bookingRow, error) {
	var (
		r                        bookingRow
		bookingID, customerID    pgtype.UUID
		tripID, partID, waiverID pgtype.UUID
		dob                      pgtype.Date
	)
	err := s.Scan(&bookingID, &customerID, &tripID, &partID, &r.Name, &dob, &r.Notes, &waiverID)
	if err != nil {
		return bookingRow{}, err
	}

	r.BookingID = uuid.UUID(bookingID.Bytes)
	r.CustomerID = uuid.UUID(customerID.Bytes)
	r.TripID = uuid.UUID(tripID.Bytes)
	r.ParticipantID = uuid.UUID(partID.Bytes)
	r.DOB = dob.Time
	if waiverID.Valid {
		id := uuid.UUID(waiverID.Bytes)
		r.WaiverID = &id
	}
	return r, nil
}

// groupBookings folds (booking, participant) rows into bookings in one pass.
// Bookings appear in the order of their first row, and each booking's
// participants in the order of their rows. The first row of a group sets the
// booking header; every row contributes one participant.
func groupBookings(rows []bookingRow) []domain.Booking {
	bookings := []domain.Booking{}
	index := make(map[uuid.UUID]int)

	for _, r := range rows {
		i, ok := index[r.BookingID]
		if !ok {
			i = len(bookings)
			index[r.BookingID] = i
			bookings = append(bookings, domain.Booking{
				ID:       r.BookingID,
				Customer: r.CustomerID,
				Trip:     r.TripID,
			})
		}
		bookings[i].Participants = append(bookings[i].Participants, r.participant())
	}
	return bookings
}

// scanCustomer maps a customer row. found is false on pgx.ErrNoRows.
// Stored values are re-validated through the domain constructors.
func scanCustomer(s scanner) (domain.Customer, bool, error) {
	var (
		id                 pgtype.UUID
		name, email, phone string
	)
	if err := s.Scan(&id, &name, &email, &phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, false, nil
		}
		return domain.Customer{}, false, err
	}

	c := domain.Customer{ID: uuid.UUID(id.Bytes)}
	var err error
	if c.Name, err = domain.NewCustomerName(name); err != nil {
		return domain.Customer{}, false, fmt.Errorf("customer %s: %w", c.ID, err)
	}
	if c.Email, err = domain.NewEmailAddress(email); err != nil {
		return domain.Customer{}, false, fmt.Errorf("customer %s: %w", c.ID, err)
	}
	if c.Phone, err = domain.NewPhoneNumber(phone); err != nil {
		return domain.Customer{}, false, fmt.Errorf("customer %s: %w", c.ID, err)
	}
	return c, true, nil
}

// scanTrip maps one row of selectTrips.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                    domain.Trip
		id, locationID, kind pgtype.UUID
	)
	err := s.Scan(&id, &locationID, &t.StartTime, &t.EndTime,
		&kind, &t.Kind.Name, &t.Kind.Description, &t.Kind.Guided, &t.Kind.MealProvided)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Location = uuid.UUID(locationID.Bytes)
	t.Kind.ID = uuid.UUID(kind.Bytes)
	t.StartTime = t.StartTime.UTC()
	t.EndTime = t.EndTime.UTC()
	return t, nil
}
