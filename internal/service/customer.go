package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

// CustomerService implements business logic for Customer operations.
// Field validation lives in the domain value objects; the service only
// sequences lookups and writes.
type CustomerService struct {
	customers repo.CustomerRepo
}

// NewCustomerService constructs a CustomerService backed by the provided CustomerRepo.
func NewCustomerService(customers repo.CustomerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create validates req, assigns a new ID and persists the customer.
// Returns domain.ErrConflict if the email is already taken.
func (s *CustomerService) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	c, err := domain.NewCustomer(req)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.customers.SaveCustomer(ctx, c); err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Create: %w", err)
	}
	return c, nil
}

// Get returns a single customer by ID.
// Returns domain.ErrNotFound if no customer with that ID exists.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	c, found, err := s.customers.FindCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Get: %w", err)
	}
	if !found {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Get: %w", &domain.NotFoundError{Entity: domain.EntityCustomer, ID: id})
	}
	return c, nil
}

// Edit applies the fields present in req to an existing customer.
// Returns domain.ErrNotFound if the customer does not exist and
// domain.ErrValidation if a present field is invalid.
func (s *CustomerService) Edit(ctx context.Context, req domain.EditCustomerRequest) (domain.Customer, error) {
	c, err := s.Get(ctx, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	edited, err := req.Apply(c)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.customers.SaveCustomer(ctx, edited); err != nil {
		return domain.Customer{}, fmt.Errorf("service.CustomerService.Edit: %w", err)
	}
	return edited, nil
}

// Delete removes a customer. Deleting a missing customer succeeds; deleting
// one that still has bookings returns domain.ErrConflict.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	return nil
}
