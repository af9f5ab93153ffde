package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

func validBooking() domain.Booking {
	return domain.Booking{
		ID:       uuid.New(),
		Customer: uuid.New(),
		Trip:     uuid.New(),
		Participants: []domain.Participant{
			{ID: uuid.New(), Name: "Ana"},
			{ID: uuid.New(), Name: "Ben"},
		},
	}
}

func TestBooking_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *domain.Booking)
		wantErr bool
	}{
		{"valid", func(*domain.Booking) {}, false},
		{"nil id", func(b *domain.Booking) { b.ID = uuid.Nil }, true},
		{"nil customer", func(b *domain.Booking) { b.Customer = uuid.Nil }, true},
		{"nil trip", func(b *domain.Booking) { b.Trip = uuid.Nil }, true},
		{"no participants", func(b *domain.Booking) { b.Participants = nil }, true},
		{"participant without id", func(b *domain.Booking) { b.Participants[1].ID = uuid.Nil }, true},
		{"participant blank name", func(b *domain.Booking) { b.Participants[0].Name = "  " }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(&b)

			err := b.Validate()

			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	v := validBooking()

	b, err := domain.NewBooking(v.ID, v.Customer, v.Trip, v.Participants)
	require.NoError(t, err)
	assert.Equal(t, v, b)

	_, err = domain.NewBooking(v.ID, v.Customer, v.Trip, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFilters_IsEmpty(t *testing.T) {
	id := uuid.New()

	assert.True(t, domain.BookingFilters{}.IsEmpty())
	assert.False(t, domain.BookingFilters{Participant: &id}.IsEmpty())
	assert.True(t, domain.TripFilters{}.IsEmpty())
	assert.False(t, domain.TripFilters{DateRange: &domain.TimeRange{}}.IsEmpty())
}

func TestBookingRentals_Validate(t *testing.T) {
	assert.ErrorIs(t, domain.BookingRentals{}.Validate(), domain.ErrValidation)

	nilEquipment := domain.BookingRentals{BookingID: uuid.New(), Rentals: map[uuid.UUID]int32{uuid.Nil: 1}}
	assert.ErrorIs(t, nilEquipment.Validate(), domain.ErrValidation)

	negative := domain.BookingRentals{BookingID: uuid.New(), Rentals: map[uuid.UUID]int32{uuid.New(): -2}}
	assert.NoError(t, negative.Validate())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := fmt.Errorf("service: %w", &domain.StoreError{
		Entity: domain.EntityCustomer,
		Op:     "repo.CustomerRepo.SaveCustomer",
		Kind:   domain.ErrConflict,
		Err:    cause,
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, domain.EntityCustomer, storeErr.Entity)
	assert.Equal(t,
		"service: repo.CustomerRepo.SaveCustomer: customer conflict: duplicate key value",
		err.Error())
}

func TestNotFoundError(t *testing.T) {
	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	err := fmt.Errorf("service.TripService.Get: %w", &domain.NotFoundError{Entity: domain.EntityTrip, ID: id})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrConflict)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityTrip, nf.Entity)
	assert.Equal(t, "service.TripService.Get: trip 01890a5d-ac96-774b-bcce-b302099a8057: not found", err.Error())
}
