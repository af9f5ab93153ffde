// Package repotest provides an in-memory repo.Repository and a contract test
// suite that every Repository implementation must pass.
package repotest

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

type bookingHeader struct {
	customer uuid.UUID
	trip     uuid.UUID
	members  []uuid.UUID // participant ids in booking order
}

// Memory is a repo.Repository held in maps. It mirrors the constraints of the
// Postgres schema that callers can observe: unique customer emails, booking
// references to existing customers and trips, unique participants per booking,
// rentals of catalogued equipment only and restricted customer deletion. Writes that violate them apply nothing.
type Memory struct {
	mu           sync.RWMutex
	customers    map[uuid.UUID]domain.Customer
	trips        map[uuid.UUID]domain.Trip
	bookings     map[uuid.UUID]bookingHeader
	participants map[uuid.UUID]domain.Participant
	waivers      map[uuid.UUID]uuid.UUID // participant id -> waiver id
	equipment    map[uuid.UUID]domain.Equipment
	rentals      map[uuid.UUID]map[uuid.UUID]int32
}

var _ repo.Repository = (*Memory)(nil)

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		customers:    map[uuid.UUID]domain.Customer{},
		trips:        map[uuid.UUID]domain.Trip{},
		bookings:     map[uuid.UUID]bookingHeader{},
		participants: map[uuid.UUID]domain.Participant{},
		waivers:      map[uuid.UUID]uuid.UUID{},
		equipment:    map[uuid.UUID]domain.Equipment{},
		rentals:      map[uuid.UUID]map[uuid.UUID]int32{},
	}
}

// AddTrip stores a trip. Trips have no write path in the contract.
func (m *Memory) AddTrip(t domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = t
}

// AttachWaiver records that participantID signed w. Only the id is kept;
// waiver content is never read back through the repository.
func (m *Memory) AttachWaiver(participantID uuid.UUID, w domain.Waiver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waivers[participantID] = w.ID
}

// AddEquipment adds e to the catalogue rentals may reference.
func (m *Memory) AddEquipment(e domain.Equipment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment[e.ID] = e
}

func conflict(entity domain.Entity, op, reason string) error {
	return &domain.StoreError{Entity: entity, Op: op, Kind: domain.ErrConflict, Err: errors.New(reason)}
}

func (m *Memory) FindBooking(_ context.Context, id uuid.UUID) (domain.Booking, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, false, nil
	}
	return m.assemble(id, h), true, nil
}

func (m *Memory) FindBookings(_ context.Context, f domain.BookingFilters) ([]domain.Booking, error) {
	if f.IsEmpty() {
		return []domain.Booking{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Booking{}
	for _, id := range sortedKeys(m.bookings) {
		h := m.bookings[id]
		if f.Customer != nil && *f.Customer != h.customer {
			continue
		}
		if f.Trip != nil && *f.Trip != h.trip {
			continue
		}
		if f.Participant != nil && !slices.Contains(h.members, *f.Participant) {
			continue
		}
		out = append(out, m.assemble(id, h))
	}
	return out, nil
}

func (m *Memory) assemble(id uuid.UUID, h bookingHeader) domain.Booking {
	b := domain.Booking{ID: id, Customer: h.customer, Trip: h.trip}
	for _, pid := range h.members {
		p := m.participants[pid]
		p.Waiver = nil
		if w, ok := m.waivers[pid]; ok {
			p.Waiver = &w
		}
		b.Participants = append(b.Participants, p)
	}
	return b
}

func (m *Memory) SaveBooking(_ context.Context, b domain.Booking) error {
	const op = "repotest.Memory.SaveBooking"
	if err := b.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[b.Customer]; !ok {
		return conflict(domain.EntityBooking, op, "customer does not exist")
	}
	if _, ok := m.trips[b.Trip]; !ok {
		return conflict(domain.EntityBooking, op, "trip does not exist")
	}
	members := make([]uuid.UUID, 0, len(b.Participants))
	for _, p := range b.Participants {
		if slices.Contains(members, p.ID) {
			return conflict(domain.EntityBooking, op, "duplicate participant "+p.ID.String())
		}
		members = append(members, p.ID)
	}

	for _, p := range b.Participants {
		p.Waiver = nil
		m.participants[p.ID] = p
	}
	m.bookings[b.ID] = bookingHeader{customer: b.Customer, trip: b.Trip, members: members}
	return nil
}

func (m *Memory) DeleteBooking(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rentals, id)
	delete(m.bookings, id)
	return nil
}

func (m *Memory) FindCustomer(_ context.Context, id uuid.UUID) (domain.Customer, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	return c, ok, nil
}

func (m *Memory) SaveCustomer(_ context.Context, c domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, other := range m.customers {
		if id != c.ID && other.Email == c.Email {
			return conflict(domain.EntityCustomer, "repotest.Memory.SaveCustomer", "email taken")
		}
	}
	m.customers[c.ID] = c
	return nil
}

func (m *Memory) DeleteCustomer(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range m.bookings {
		if h.customer == id {
			return conflict(domain.EntityCustomer, "repotest.Memory.DeleteCustomer", "customer has bookings")
		}
	}
	delete(m.customers, id)
	return nil
}

func (m *Memory) FindTrip(_ context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trips[id]
	return t, ok, nil
}

func (m *Memory) FindTrips(_ context.Context, f domain.TripFilters) ([]domain.Trip, error) {
	if f.IsEmpty() {
		return []domain.Trip{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Trip{}
	for _, id := range sortedKeys(m.trips) {
		t := m.trips[id]
		if f.Kind != nil && *f.Kind != t.Kind.ID {
			continue
		}
		if f.Location != nil && *f.Location != t.Location {
			continue
		}
		if r := f.DateRange; r != nil && (t.StartTime.Before(r.Start) || t.StartTime.After(r.End)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *Memory) FindBookingRentals(_ context.Context, bookingID uuid.UUID) (domain.BookingRentals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := domain.BookingRentals{BookingID: bookingID, Rentals: map[uuid.UUID]int32{}}
	for id, qty := range m.rentals[bookingID] {
		out.Rentals[id] = qty
	}
	return out, nil
}

func (m *Memory) SaveBookingRentals(_ context.Context, r domain.BookingRentals) error {
	const op = "repotest.Memory.SaveBookingRentals"
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[r.BookingID]; !ok && len(r.Rentals) > 0 {
		return conflict(domain.EntityEquipment, op, "booking does not exist")
	}
	for id := range r.Rentals {
		if _, ok := m.equipment[id]; !ok {
			return conflict(domain.EntityEquipment, op, "equipment "+id.String()+" does not exist")
		}
	}
	set := make(map[uuid.UUID]int32, len(r.Rentals))
	for id, qty := range r.Rentals {
		set[id] = qty
	}
	m.rentals[r.BookingID] = set
	return nil
}

func sortedKeys[V any](m map[uuid.UUID]V) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return keys
}
