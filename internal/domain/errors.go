package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by service functions when the requested resource
// does not exist. Repositories never return it: absence is reported through
// their found flag.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails value-object or aggregate
// validation. It is always returned before any storage call is made.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict marks a storage failure caused by a violated unique or foreign
// key constraint, e.g. a taken email or a customer that still has bookings.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnavailable marks a storage failure caused by connectivity: the database
// could not be reached, the connection dropped, or the server is shutting down.
var ErrUnavailable = errors.New("storage unavailable")

// ErrUnknown marks any storage failure that is neither a conflict nor a
// connectivity problem.
var ErrUnknown = errors.New("storage error")

// Entity names the part of the booking domain a storage failure belongs to.
type Entity string

const (
	EntityBooking   Entity = "booking"
	EntityCustomer  Entity = "customer"
	EntityTrip      Entity = "trip"
	EntityEquipment Entity = "equipment"
)

// NotFoundError names the record a service could not find. It unwraps to
// ErrNotFound.
type NotFoundError struct {
	Entity Entity
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StoreError wraps a storage-layer failure with the operation and entity it
// happened in. It unwraps to both its Kind (one of ErrConflict,
// ErrUnavailable, ErrUnknown) and the underlying cause, so callers can use
// errors.Is(err, domain.ErrConflict) without inspecting driver errors.
type StoreError struct {
	Entity Entity
	Op     string
	Kind   error
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %v: %v", e.Op, e.Entity, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// validationf builds an error wrapping ErrValidation with a formatted reason.
func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
