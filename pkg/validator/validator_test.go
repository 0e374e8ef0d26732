package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pledge struct {
	Amount   decimal.Decimal `validate:"gt=0"`
	Currency string          `validate:"currency_code"`
	State    string          `validate:"pledge_status"`
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v := New()
	require.NoError(t, v.RegisterEnum("pledge_status", func(s string) bool {
		return s == "open" || s == "closed"
	}))
	return v
}

func TestValidatePasses(t *testing.T) {
	v := newTestValidator(t)
	err := v.Validate(pledge{Amount: decimal.NewFromInt(5), Currency: "EUR", State: "open"})
	assert.NoError(t, err)
}

func TestValidateReportsFields(t *testing.T) {
	v := newTestValidator(t)
	in := pledge{Amount: decimal.Zero, Currency: "euro", State: "lost"}

	err := v.Validate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field 'Amount' failed validation 'gt'")

	errs := v.ValidateStructured(in)
	assert.Equal(t, "Must be greater than 0", errs["Amount"])
	assert.Equal(t, "Invalid currency code (ISO 4217 required)", errs["Currency"])
	assert.Equal(t, "Unknown value lost", errs["State"])
}

func TestValidateStructuredNilWhenValid(t *testing.T) {
	v := newTestValidator(t)
	assert.Nil(t, v.ValidateStructured(pledge{Amount: decimal.NewFromInt(1), Currency: "USD", State: "closed"}))
}
