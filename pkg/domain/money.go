package domain

import (
	"encoding/json"
	"regexp"
	"strings"

	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
)

// Currency represents ISO 4217 currency codes
type Currency string

const (
	EUR Currency = "EUR" // Euro
	USD Currency = "USD" // US Dollar
	GBP Currency = "GBP" // Pound Sterling
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseCurrency normalizes a currency code and checks its shape.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", errors.New(errors.ErrInvalidCurrency, "invalid currency code %q", code)
	}
	return c, nil
}

// IsValid reports whether c is a three-letter upper-case code.
func (c Currency) IsValid() bool {
	return currencyCodePattern.MatchString(string(c))
}

func (c Currency) String() string { return string(c) }

// Money represents a non-negative monetary amount with currency.
// Values are immutable; every operation returns a new Money.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney validates amount and currency.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, errors.New(errors.ErrInvalidCurrency, "invalid currency code %q", string(currency))
	}
	if amount.IsNegative() {
		return Money{}, errors.New(errors.ErrNegativeAmount, "amount cannot be negative: %s %s", amount.String(), currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromString parses a decimal string such as "1500.50".
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errors.New(errors.ErrInvalidAmount, "invalid amount %q", amount)
	}
	return NewMoney(d, currency)
}

// MustMoney is NewMoney for fixed, known-good values. It panics on invalid input.
func MustMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount in currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() Currency { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// SameCurrency returns a currency mismatch error unless both values share a currency.
func (m Money) SameCurrency(other Money) error {
	if m.currency != other.currency {
		return errors.New(errors.ErrCurrencyMismatch, "currency mismatch: cannot combine %s with %s", m.currency, other.currency)
	}
	return nil
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.SameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract never goes below zero.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.SameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		result = decimal.Zero
	}
	return Money{amount: result, currency: m.currency}, nil
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, errors.New(errors.ErrInvalidAmount, "cannot multiply money by negative factor %s", factor.String())
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

// Divide splits the amount and rounds to cents.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if !divisor.IsPositive() {
		return Money{}, errors.New(errors.ErrInvalidAmount, "cannot divide money by %s", divisor.String())
	}
	return Money{amount: m.amount.Div(divisor).Round(2), currency: m.currency}, nil
}

// Ratio returns m/other, or zero when other is zero.
func (m Money) Ratio(other Money) (decimal.Decimal, error) {
	if err := m.SameCurrency(other); err != nil {
		return decimal.Zero, err
	}
	if other.amount.IsZero() {
		return decimal.Zero, nil
	}
	return m.amount.Div(other.amount), nil
}

func (m Money) Equals(other Money) (bool, error) {
	if err := m.SameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.Equal(other.amount), nil
}

func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.SameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.SameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

func (m Money) LessThan(other Money) (bool, error) {
	if err := m.SameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Format renders the amount with DefaultFormatter, e.g. "€1.500,50".
func (m Money) Format() string {
	return DefaultFormatter.Format(m)
}

// FormatRounded renders the amount rounded to places decimals.
func (m Money) FormatRounded(places int32) string {
	return DefaultFormatter.FormatPlaces(m, places)
}

func (m Money) String() string { return m.Format() }

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount    decimal.Decimal `json:"amount"`
		Currency  Currency        `json:"currency"`
		Formatted string          `json:"formatted"`
	}{m.amount, m.currency, m.Format()})
}
