package domain

import (
	"encoding/json"
	"testing"

	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eur(v string) Money {
	return MustMoney(decimal.RequireFromString(v), EUR)
}

func usd(v string) Money {
	return MustMoney(decimal.RequireFromString(v), USD)
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(10), EUR)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, EUR, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(-1), EUR)
	assert.ErrorIs(t, err, errors.ErrNegativeAmount)

	_, err = NewMoney(decimal.NewFromInt(1), Currency("eu"))
	assert.ErrorIs(t, err, errors.ErrInvalidCurrency)

	_, err = NewMoneyFromString("abc", EUR)
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" usd ")
	require.NoError(t, err)
	assert.Equal(t, USD, c)

	_, err = ParseCurrency("dollars")
	assert.ErrorIs(t, err, errors.ErrInvalidCurrency)
}

func TestZero(t *testing.T) {
	z := Zero(GBP)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, GBP, z.Currency())
}

func TestMoneyArithmetic(t *testing.T) {
	sum, err := eur("10.50").Add(eur("4.50"))
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))

	diff, err := eur("10").Subtract(eur("4"))
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))

	clamped, err := eur("4").Subtract(eur("10"))
	require.NoError(t, err)
	assert.True(t, clamped.IsZero())

	avg, err := eur("100").Divide(decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "33.33", avg.Amount().String())

	_, err = eur("1").Divide(decimal.Zero)
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)

	doubled, err := eur("12.5").Multiply(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(25)))
}

func TestMoneyComparisons(t *testing.T) {
	eq, err := eur("10").Equals(eur("10.00"))
	require.NoError(t, err)
	assert.True(t, eq)

	gt, err := eur("10.01").GreaterThan(eur("10"))
	require.NoError(t, err)
	assert.True(t, gt)

	gte, err := eur("10").GreaterThanOrEqual(eur("10"))
	require.NoError(t, err)
	assert.True(t, gte)

	lt, err := eur("9").LessThan(eur("10"))
	require.NoError(t, err)
	assert.True(t, lt)
}

func TestCurrencyMismatchAlwaysErrors(t *testing.T) {
	a, b := eur("10"), usd("10")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.Subtract(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.Equals(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.GreaterThan(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.GreaterThanOrEqual(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.LessThan(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = a.Ratio(b)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Money
		want string
	}{
		{"eur thousands", eur("1500.50"), "€1.500,50"},
		{"usd", usd("2000"), "$2,000.00"},
		{"gbp", MustMoney(decimal.RequireFromString("1234.56"), GBP), "£1,234.56"},
		{"eur small", eur("5"), "€5,00"},
		{"eur millions", eur("10000000"), "€10.000.000,00"},
		{"rounding", usd("0.005"), "$0.01"},
		{"unknown currency", MustMoney(decimal.RequireFromString("1234.5"), Currency("CHF")), "CHF 1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Format())
		})
	}
}

func TestFormatRounded(t *testing.T) {
	assert.Equal(t, "€1.501", eur("1500.50").FormatRounded(0))
	assert.Equal(t, "$999", usd("999.49").FormatRounded(0))
}

func TestCustomFormatterTable(t *testing.T) {
	f := NewFormatter(map[Currency]CurrencyFormat{
		EUR: {Symbol: "EUR ", Thousands: " ", Decimal: ".", Places: 1},
	})
	assert.Equal(t, "EUR 12 345.7", f.Format(eur("12345.67")))
	// the default table is untouched
	assert.Equal(t, "€12.345,67", eur("12345.67").Format())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(eur("1500.5"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1500.5","currency":"EUR","formatted":"€1.500,50"}`, string(data))
}
