package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// Customer is the API representation of domain.Customer. Stored emails are
// only length-checked, so Email is a plain string here.
type Customer struct {
	ID    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone"`
}

// CreateCustomerRequest is the body of POST /api/customers.
type CreateCustomerRequest struct {
	Name  string              `json:"name"`
	Email openapi_types.Email `json:"email"`
	Phone string              `json:"phone"`
}

// EditCustomerRequest is the body of PATCH /api/customers/{id}.
// Absent fields are left unchanged.
type EditCustomerRequest struct {
	Name  *string              `json:"name,omitempty"`
	Email *openapi_types.Email `json:"email,omitempty"`
	Phone *string              `json:"phone,omitempty"`
}

// CreateCustomer handles POST /api/customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body CreateCustomerRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	created, err := s.customers.Create(r.Context(), domain.CreateCustomerRequest{
		Name:  body.Name,
		Email: string(body.Email),
		Phone: body.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/customers/"+created.ID.String())
	writeJSON(w, http.StatusCreated, customerToResponse(created))
}

// GetCustomer handles GET /api/customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := s.customers.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// EditCustomer handles PATCH /api/customers/{id}.
func (s *Server) EditCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body EditCustomerRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	req := domain.EditCustomerRequest{ID: id, Name: body.Name, Phone: body.Phone}
	if body.Email != nil {
		email := string(*body.Email)
		req.Email = &email
	}

	edited, err := s.customers.Edit(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(edited))
}

// DeleteCustomer handles DELETE /api/customers/{id}.
// A customer who still has bookings cannot be deleted (409).
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.customers.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func customerToResponse(c domain.Customer) Customer {
	return Customer{
		ID:    c.ID,
		Name:  c.Name.String(),
		Email: c.Email.String(),
		Phone: c.Phone.String(),
	}
}
