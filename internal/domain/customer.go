// Package domain contains the core data types of the booking domain.
// It depends only on uuid and is imported by every other internal package
// (repo, service, handler, cache).
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// minTextLen is the exclusive lower bound on the trimmed length of customer
// name, email and phone values.
const minTextLen = 2

// Customer is the person who makes a Booking and is the primary contact for
// its participants.
type Customer struct {
	ID    uuid.UUID    `json:"id"`
	Name  CustomerName `json:"name"`
	Email EmailAddress `json:"email"`
	Phone PhoneNumber  `json:"phone"`
}

// CustomerName is a trimmed customer name longer than two characters.
// The zero value is not valid; build one with NewCustomerName.
type CustomerName struct{ value string }

// NewCustomerName trims s and validates its length.
func NewCustomerName(s string) (CustomerName, error) {
	v, ok := trimmedText(s)
	if !ok {
		return CustomerName{}, validationf("%q is not a valid name", v)
	}
	return CustomerName{value: v}, nil
}

func (n CustomerName) String() string { return n.value }

// MarshalText lets value objects travel through JSON as plain strings.
func (n CustomerName) MarshalText() ([]byte, error) { return []byte(n.value), nil }

// UnmarshalText validates like NewCustomerName.
func (n *CustomerName) UnmarshalText(b []byte) error {
	v, err := NewCustomerName(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// EmailAddress is a trimmed email address longer than two characters.
type EmailAddress struct{ value string }

// NewEmailAddress trims s and validates its length.
func NewEmailAddress(s string) (EmailAddress, error) {
	v, ok := trimmedText(s)
	if !ok {
		return EmailAddress{}, validationf("%q is not a valid email address", v)
	}
	return EmailAddress{value: v}, nil
}

func (e EmailAddress) String() string { return e.value }

func (e EmailAddress) MarshalText() ([]byte, error) { return []byte(e.value), nil }

func (e *EmailAddress) UnmarshalText(b []byte) error {
	v, err := NewEmailAddress(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// PhoneNumber is a trimmed phone number longer than two characters.
type PhoneNumber struct{ value string }

// NewPhoneNumber trims s and validates its length.
func NewPhoneNumber(s string) (PhoneNumber, error) {
	v, ok := trimmedText(s)
	if !ok {
		return PhoneNumber{}, validationf("%q is not a valid phone number", v)
	}
	return PhoneNumber{value: v}, nil
}

func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) MarshalText() ([]byte, error) { return []byte(p.value), nil }

func (p *PhoneNumber) UnmarshalText(b []byte) error {
	v, err := NewPhoneNumber(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func trimmedText(s string) (string, bool) {
	t := strings.TrimSpace(s)
	return t, len(t) > minTextLen
}

// CreateCustomerRequest carries the raw fields for a new customer.
type CreateCustomerRequest struct {
	Name  string
	Email string
	Phone string
}

// NewCustomer validates req and returns a Customer with a fresh time-ordered id.
func NewCustomer(req CreateCustomerRequest) (Customer, error) {
	name, err := NewCustomerName(req.Name)
	if err != nil {
		return Customer{}, err
	}
	email, err := NewEmailAddress(req.Email)
	if err != nil {
		return Customer{}, err
	}
	phone, err := NewPhoneNumber(req.Phone)
	if err != nil {
		return Customer{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: id, Name: name, Email: email, Phone: phone}, nil
}

// EditCustomerRequest carries optional replacements for a customer's fields.
// Nil fields are left unchanged.
type EditCustomerRequest struct {
	ID    uuid.UUID
	Name  *string
	Email *string
	Phone *string
}

// Apply returns c with the fields present in req replaced. c is not modified
// when any present field fails validation.
func (req EditCustomerRequest) Apply(c Customer) (Customer, error) {
	if req.Name != nil {
		name, err := NewCustomerName(*req.Name)
		if err != nil {
			return Customer{}, err
		}
		c.Name = name
	}
	if req.Email != nil {
		email, err := NewEmailAddress(*req.Email)
		if err != nil {
			return Customer{}, err
		}
		c.Email = email
	}
	if req.Phone != nil {
		phone, err := NewPhoneNumber(*req.Phone)
		if err != nil {
			return Customer{}, err
		}
		c.Phone = phone
	}
	return c, nil
}
