package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

// pgCustomerRepo is the Postgres implementation of CustomerRepo.
type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

// FindCustomer retrieves a customer by primary key.
func (r *pgCustomerRepo) FindCustomer(ctx context.Context, id uuid.UUID) (domain.Customer, bool, error) {
	const q = `
		SELECT customer_id, name, email, phone
		FROM customer
		WHERE customer_id = @customer_id`

	c, found, err := scanCustomer(r.db.QueryRow(ctx, q, pgx.NamedArgs{"customer_id": id}))
	if err != nil {
		return domain.Customer{}, false, storeError(domain.EntityCustomer, "repo.CustomerRepo.FindCustomer", err)
	}
	return c, found, nil
}

// SaveCustomer upserts a customer by primary key.
func (r *pgCustomerRepo) SaveCustomer(ctx context.Context, c domain.Customer) error {
	const q = `
		INSERT INTO customer (customer_id, name, email, phone)
		VALUES (@customer_id, @name, @email, @phone)
		ON CONFLICT (customer_id) DO UPDATE
		SET name  = EXCLUDED.name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"customer_id": c.ID,
		"name":        c.Name.String(),
		"email":       c.Email.String(),
		"phone":       c.Phone.String(),
	})
	if err != nil {
		return storeError(domain.EntityCustomer, "repo.CustomerRepo.SaveCustomer", err)
	}
	return nil
}

// DeleteCustomer removes a customer by primary key. The booking foreign key
// is RESTRICT, so a customer with bookings is not deleted.
func (r *pgCustomerRepo) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM customer WHERE customer_id = @customer_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"customer_id": id}); err != nil {
		return storeError(domain.EntityCustomer, "repo.CustomerRepo.DeleteCustomer", err)
	}
	return nil
}
