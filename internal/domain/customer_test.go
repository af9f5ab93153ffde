package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tide-outfitters/tide/backend/internal/domain"
)

func TestNewCustomerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"trimmed", "  Ada Lovelace \n", "Ada Lovelace", false},
		{"three chars", "Ada", "Ada", false},
		{"two chars", "Al", "", true},
		{"padded short", "   Al   ", "", true},
		{"blank", "   ", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.NewCustomerName(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestNewEmailAddressAndPhone(t *testing.T) {
	_, err := domain.NewEmailAddress(" a@ ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	email, err := domain.NewEmailAddress(" a@b.io ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", email.String())

	_, err = domain.NewPhoneNumber("12")
	assert.ErrorIs(t, err, domain.ErrValidation)

	phone, err := domain.NewPhoneNumber("555-0100")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", phone.String())
}

func TestNewCustomer(t *testing.T) {
	c, err := domain.NewCustomer(domain.CreateCustomerRequest{
		Name:  " Grace Hopper ",
		Email: "grace@example.com",
		Phone: "555-0100",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, uuid.Version(7), c.ID.Version())
	assert.Equal(t, "Grace Hopper", c.Name.String())
}

func TestNewCustomer_InvalidField(t *testing.T) {
	_, err := domain.NewCustomer(domain.CreateCustomerRequest{
		Name:  "Grace Hopper",
		Email: "g@",
		Phone: "555-0100",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEditCustomerRequest_Apply(t *testing.T) {
	orig, err := domain.NewCustomer(domain.CreateCustomerRequest{
		Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0100",
	})
	require.NoError(t, err)

	t.Run("only present fields change", func(t *testing.T) {
		email := "amazing.grace@example.com"

		got, err := domain.EditCustomerRequest{ID: orig.ID, Email: &email}.Apply(orig)

		require.NoError(t, err)
		assert.Equal(t, orig.ID, got.ID)
		assert.Equal(t, orig.Name, got.Name)
		assert.Equal(t, email, got.Email.String())
		assert.Equal(t, orig.Phone, got.Phone)
	})

	t.Run("invalid field rejects edit", func(t *testing.T) {
		name, phone := "Admiral Hopper", "1"

		_, err := domain.EditCustomerRequest{ID: orig.ID, Name: &name, Phone: &phone}.Apply(orig)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCustomer_JSON(t *testing.T) {
	c, err := domain.NewCustomer(domain.CreateCustomerRequest{
		Name: "Grace Hopper", Email: "grace@example.com", Phone: "555-0100",
	})
	require.NoError(t, err)

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+c.ID.String()+`","name":"Grace Hopper","email":"grace@example.com","phone":"555-0100"}`, string(b))

	var back domain.Customer
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c, back)

	err = json.Unmarshal([]byte(`{"name":"Al"}`), &back)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
