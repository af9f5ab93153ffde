package repotest_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
	"github.com/tide-outfitters/tide/backend/internal/repo/repotest"
)

type memoryHarness struct {
	mem *repotest.Memory
}

func (h memoryHarness) Repo() repo.Repository { return h.mem }

func (h memoryHarness) SeedTrip(_ *testing.T, trip domain.Trip) { h.mem.AddTrip(trip) }

func (h memoryHarness) SeedWaiver(_ *testing.T, participantID uuid.UUID) uuid.UUID {
	w := domain.Waiver{ID: uuid.New(), Content: "I accept the risks"}
	h.mem.AttachWaiver(participantID, w)
	return w.ID
}

func (h memoryHarness) SeedEquipment(_ *testing.T) uuid.UUID {
	e := domain.Equipment{ID: uuid.New(), Name: "Kayak", Description: "Single sit-on-top"}
	h.mem.AddEquipment(e)
	return e.ID
}

func TestMemory_Contract(t *testing.T) {
	repotest.RunContract(t, func(t *testing.T) repotest.Harness {
		return memoryHarness{mem: repotest.NewMemory()}
	})
}

func TestMemory_SaveBookingRequiresCustomer(t *testing.T) {
	mem := repotest.NewMemory()
	b := domain.Booking{
		ID:           uuid.New(),
		Customer:     uuid.New(),
		Trip:         uuid.New(),
		Participants: []domain.Participant{{ID: uuid.New(), Name: "Orphan"}},
	}

	err := mem.SaveBooking(context.Background(), b)

	require.ErrorIs(t, err, domain.ErrConflict)
	_, found, _ := mem.FindBooking(context.Background(), b.ID)
	assert.False(t, found)
}

func TestMemory_RentalsForMissingBooking(t *testing.T) {
	mem := repotest.NewMemory()
	ctx := context.Background()
	bookingID := uuid.New()

	// Clearing the rentals of an unknown booking is allowed.
	require.NoError(t, mem.SaveBookingRentals(ctx, domain.BookingRentals{BookingID: bookingID}))

	err := mem.SaveBookingRentals(ctx, domain.BookingRentals{
		BookingID: bookingID,
		Rentals:   map[uuid.UUID]int32{uuid.New(): 1},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
