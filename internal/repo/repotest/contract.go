package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// Harness gives the contract suite a fresh, isolated Repository plus the
// seeding it needs for data the contract cannot write (trips, waivers,
// equipment).
type Harness interface {
	Repo() repo.Repository
	SeedTrip(t *testing.T, trip domain.Trip)
	// SeedWaiver stores a waiver and attaches it to an existing participant.
	SeedWaiver(t *testing.T, participantID uuid.UUID) uuid.UUID
	SeedEquipment(t *testing.T) uuid.UUID
}

// RunContract runs the repository contract against the Harness returned by
// newHarness, which is called once per subtest.
//
// Writes that fail with a constraint violation are always the last step of a
// subtest, so implementations running inside a single test transaction stay usable.
func RunContract(t *testing.T, newHarness func(t *testing.T) Harness) {
	ctx := context.Background()

	t.Run("FindBooking_NotFound", func(t *testing.T) {
		h := newHarness(t)

		_, found, err := h.Repo().FindBooking(ctx, newID(t))

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("SaveBooking_RoundTripPreservesOrder", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 3)
		// Reverse so saved order differs from id order.
		b.Participants[0], b.Participants[2] = b.Participants[2], b.Participants[0]
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		got, found, err := h.Repo().FindBooking(ctx, b.ID)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, b, got)
	})

	t.Run("SaveBooking_NoParticipants", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 0)
		err := h.Repo().SaveBooking(ctx, b)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("SaveBooking_ResaveReplacesMembership", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 2)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		b.Participants = append(b.Participants[1:], participantFixture(t, "Late Addition"))
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		got, found, err := h.Repo().FindBooking(ctx, b.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, b.Participants, got.Participants)
	})

	t.Run("SaveBooking_UpsertsParticipantContentStoreWide", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		first := bookingFixture(t, f.customer, f.trip, 1)
		require.NoError(t, h.Repo().SaveBooking(ctx, first))

		shared := first.Participants[0]
		shared.Name = "Renamed Paddler"
		shared.Notes = "vegetarian"
		shared.DOB = time.Date(1990, 2, 3, 0, 0, 0, 0, time.UTC)
		second := bookingFixture(t, f.customer, f.trip, 0)
		second.Participants = []domain.Participant{shared}
		require.NoError(t, h.Repo().SaveBooking(ctx, second))

		got, found, err := h.Repo().FindBooking(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []domain.Participant{shared}, got.Participants)
	})

	t.Run("SaveBooking_NullWaiverMapsToNil", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 2)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))
		waiverID := h.SeedWaiver(t, b.Participants[1].ID)

		got, found, err := h.Repo().FindBooking(ctx, b.ID)

		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, got.Participants, 2)
		assert.Nil(t, got.Participants[0].Waiver)
		require.NotNil(t, got.Participants[1].Waiver)
		assert.Equal(t, waiverID, *got.Participants[1].Waiver)
	})

	t.Run("SaveBooking_DuplicateParticipantAppliesNothing", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 2)
		b.Participants = append(b.Participants, b.Participants[0])

		err := h.Repo().SaveBooking(ctx, b)
		require.ErrorIs(t, err, domain.ErrConflict)

		_, found, err := h.Repo().FindBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, found, "no header may survive a failed save")

		got, err := h.Repo().FindBookings(ctx, domain.BookingFilters{Participant: &b.Participants[1].ID})
		require.NoError(t, err)
		assert.Empty(t, got, "no membership may survive a failed save")
	})

	t.Run("DeleteBooking_Idempotent", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 2)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		require.NoError(t, h.Repo().DeleteBooking(ctx, b.ID))
		require.NoError(t, h.Repo().DeleteBooking(ctx, b.ID), "second delete is a no-op")
		require.NoError(t, h.Repo().DeleteBooking(ctx, newID(t)), "missing id is a no-op")

		_, found, err := h.Repo().FindBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, found)

		// Participants survive: they can join a new booking unchanged.
		again := bookingFixture(t, f.customer, f.trip, 0)
		again.Participants = b.Participants
		require.NoError(t, h.Repo().SaveBooking(ctx, again))
	})

	t.Run("FindBookings_FilterConjunction", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		otherTrip := tripFixture(t, f.trip.Kind.ID, f.trip.Location, f.trip.StartTime.AddDate(0, 0, 7))
		h.SeedTrip(t, otherTrip)

		b1 := bookingFixture(t, f.customer, f.trip, 1)
		b2 := bookingFixture(t, f.customer, otherTrip, 2)
		require.NoError(t, h.Repo().SaveBooking(ctx, b1))
		require.NoError(t, h.Repo().SaveBooking(ctx, b2))

		both, err := h.Repo().FindBookings(ctx, domain.BookingFilters{Customer: &f.customer.ID})
		require.NoError(t, err)
		assert.Equal(t, []domain.Booking{b1, b2}, both, "ordered by booking id")

		only, err := h.Repo().FindBookings(ctx, domain.BookingFilters{Customer: &f.customer.ID, Trip: &f.trip.ID})
		require.NoError(t, err)
		assert.Equal(t, []domain.Booking{b1}, only)
	})

	t.Run("FindBookings_ParticipantKeepsFullBooking", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		b := bookingFixture(t, f.customer, f.trip, 3)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		got, err := h.Repo().FindBookings(ctx, domain.BookingFilters{Participant: &b.Participants[1].ID})

		require.NoError(t, err)
		assert.Equal(t, []domain.Booking{b}, got)
	})

	t.Run("FindBookings_EmptyFiltersReturnNothing", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		require.NoError(t, h.Repo().SaveBooking(ctx, bookingFixture(t, f.customer, f.trip, 1)))

		got, err := h.Repo().FindBookings(ctx, domain.BookingFilters{})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Customer_SaveFindUpdate", func(t *testing.T) {
		h := newHarness(t)

		c := customerFixture(t, "Ada Lovelace", "ada@example.com")
		require.NoError(t, h.Repo().SaveCustomer(ctx, c))

		got, found, err := h.Repo().FindCustomer(ctx, c.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, c, got)

		phone, err := domain.NewPhoneNumber("+44 20 7946 0000")
		require.NoError(t, err)
		c.Phone = phone
		require.NoError(t, h.Repo().SaveCustomer(ctx, c))

		got, _, err = h.Repo().FindCustomer(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "+44 20 7946 0000", got.Phone.String())
	})

	t.Run("Customer_FindNotFound", func(t *testing.T) {
		h := newHarness(t)

		_, found, err := h.Repo().FindCustomer(ctx, newID(t))

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Customer_DeleteIdempotent", func(t *testing.T) {
		h := newHarness(t)

		c := customerFixture(t, "Grace Hopper", "grace@example.com")
		require.NoError(t, h.Repo().SaveCustomer(ctx, c))

		require.NoError(t, h.Repo().DeleteCustomer(ctx, c.ID))
		require.NoError(t, h.Repo().DeleteCustomer(ctx, c.ID))

		_, found, err := h.Repo().FindCustomer(ctx, c.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Customer_EmailTaken", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.Repo().SaveCustomer(ctx, customerFixture(t, "First Owner", "same@example.com")))

		err := h.Repo().SaveCustomer(ctx, customerFixture(t, "Second Owner", "same@example.com"))

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Customer_DeleteWithBookingsRestricted", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		require.NoError(t, h.Repo().SaveBooking(ctx, bookingFixture(t, f.customer, f.trip, 1)))

		err := h.Repo().DeleteCustomer(ctx, f.customer.ID)

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("FindTrip", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)

		got, found, err := h.Repo().FindTrip(ctx, f.trip.ID)
		require.NoError(t, err)
		require.True(t, found)
		assertTripEqual(t, f.trip, got)

		_, found, err = h.Repo().FindTrip(ctx, newID(t))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("FindTrips_Filters", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		otherKind := newID(t)
		otherLocation := newID(t)

		later := tripFixture(t, f.trip.Kind.ID, otherLocation, f.trip.StartTime.AddDate(0, 1, 0))
		different := tripFixture(t, otherKind, f.trip.Location, f.trip.StartTime.AddDate(0, 0, 1))
		h.SeedTrip(t, later)
		h.SeedTrip(t, different)

		byKind, err := h.Repo().FindTrips(ctx, domain.TripFilters{Kind: &f.trip.Kind.ID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.trip.ID, later.ID}, tripIDs(byKind))

		byLocation, err := h.Repo().FindTrips(ctx, domain.TripFilters{Location: &f.trip.Location})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.trip.ID, different.ID}, tripIDs(byLocation))

		window := domain.TimeRange{Start: f.trip.StartTime, End: f.trip.StartTime.AddDate(0, 0, 2)}
		inWindow, err := h.Repo().FindTrips(ctx, domain.TripFilters{DateRange: &window})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.trip.ID, different.ID}, tripIDs(inWindow))

		combined, err := h.Repo().FindTrips(ctx, domain.TripFilters{Kind: &f.trip.Kind.ID, DateRange: &window})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{f.trip.ID}, tripIDs(combined))

		none, err := h.Repo().FindTrips(ctx, domain.TripFilters{})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("Rentals_RoundTripAndReplace", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		kayak, paddle := h.SeedEquipment(t), h.SeedEquipment(t)

		b := bookingFixture(t, f.customer, f.trip, 1)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		empty, err := h.Repo().FindBookingRentals(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingRentals{BookingID: b.ID, Rentals: map[uuid.UUID]int32{}}, empty)

		first := domain.BookingRentals{BookingID: b.ID, Rentals: map[uuid.UUID]int32{kayak: 2, paddle: 4}}
		require.NoError(t, h.Repo().SaveBookingRentals(ctx, first))
		got, err := h.Repo().FindBookingRentals(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		second := domain.BookingRentals{BookingID: b.ID, Rentals: map[uuid.UUID]int32{paddle: 1}}
		require.NoError(t, h.Repo().SaveBookingRentals(ctx, second))
		got, err = h.Repo().FindBookingRentals(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, second, got)

		require.NoError(t, h.Repo().DeleteBooking(ctx, b.ID))
		got, err = h.Repo().FindBookingRentals(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Rentals, "rentals go with their booking")
	})

	t.Run("Rentals_UnknownEquipmentConflicts", func(t *testing.T) {
		h := newHarness(t)
		f := seedBase(t, h)
		kayak := h.SeedEquipment(t)

		b := bookingFixture(t, f.customer, f.trip, 1)
		require.NoError(t, h.Repo().SaveBooking(ctx, b))

		err := h.Repo().SaveBookingRentals(ctx, domain.BookingRentals{
			BookingID: b.ID,
			Rentals:   map[uuid.UUID]int32{kayak: 1, newID(t): 1},
		})

		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, domain.EntityEquipment, storeErr.Entity)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

type base struct {
	customer domain.Customer
	trip     domain.Trip
}

// seedBase stores one customer and one trip, the minimum a booking references.
func seedBase(t *testing.T, h Harness) base {
	t.Helper()
	c := customerFixture(t, "Base Customer", newID(t).String()+"@example.com")
	require.NoError(t, h.Repo().SaveCustomer(context.Background(), c))

	trip := tripFixture(t, newID(t), newID(t), time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))
	h.SeedTrip(t, trip)
	return base{customer: c, trip: trip}
}

func newID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id
}

func customerFixture(t *testing.T, name, email string) domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(domain.CreateCustomerRequest{Name: name, Email: email, Phone: "555-0100"})
	require.NoError(t, err)
	return c
}

func tripFixture(t *testing.T, kind, location uuid.UUID, start time.Time) domain.Trip {
	t.Helper()
	return domain.Trip{
		ID: newID(t),
		Kind: domain.TripKind{
			ID:           kind,
			Name:         "Sea Kayak Day",
			Description:  "Full day on the water",
			Guided:       true,
			MealProvided: false,
		},
		Location:  location,
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
	}
}

func participantFixture(t *testing.T, name string) domain.Participant {
	t.Helper()
	return domain.Participant{
		ID:    newID(t),
		Name:  name,
		DOB:   time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Notes: "",
	}
}

func bookingFixture(t *testing.T, c domain.Customer, trip domain.Trip, participants int) domain.Booking {
	t.Helper()
	b := domain.Booking{ID: newID(t), Customer: c.ID, Trip: trip.ID}
	for i := range participants {
		p := participantFixture(t, "Participant "+string(rune('A'+i)))
		p.Notes = "seat " + string(rune('1'+i))
		b.Participants = append(b.Participants, p)
	}
	return b
}

func assertTripEqual(t *testing.T, want, got domain.Trip) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Kind, got.Kind)
	assert.Equal(t, want.Location, got.Location)
	assert.True(t, want.StartTime.Equal(got.StartTime), "StartTime mismatch")
	assert.True(t, want.EndTime.Equal(got.EndTime), "EndTime mismatch")
}

func tripIDs(trips []domain.Trip) []uuid.UUID {
	ids := make([]uuid.UUID, len(trips))
	for i, tr := range trips {
		ids[i] = tr.ID
	}
	return ids
}
