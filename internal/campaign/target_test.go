package campaign

import (
	"testing"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eur(v string) domain.Money {
	return domain.MustMoney(decimal.RequireFromString(v), domain.EUR)
}

func usd(v string) domain.Money {
	return domain.MustMoney(decimal.RequireFromString(v), domain.USD)
}

func mustTarget(t *testing.T, v string) FundraisingTarget {
	t.Helper()
	target, err := NewFundraisingTarget(eur(v))
	require.NoError(t, err)
	return target
}

func TestFundraisingTargetBounds(t *testing.T) {
	_, err := NewFundraisingTarget(eur("100.00"))
	assert.NoError(t, err)

	_, err = NewFundraisingTarget(eur("10000000.00"))
	assert.NoError(t, err)

	_, err = NewFundraisingTarget(eur("99.99"))
	assert.ErrorIs(t, err, errors.ErrTargetBelowMinimum)
	assert.EqualError(t, err, "Fundraising target must be at least €100,00")

	_, err = NewFundraisingTarget(eur("10000000.01"))
	assert.ErrorIs(t, err, errors.ErrTargetAboveMaximum)
	assert.EqualError(t, err, "Fundraising target cannot exceed €10.000.000,00")

	_, err = NewFundraisingTarget(usd("50"))
	assert.EqualError(t, err, "Fundraising target must be at least $100.00")

	_, err = NewFundraisingTarget(domain.Money{})
	assert.ErrorIs(t, err, errors.ErrInvalidCurrency)
}

func TestFundraisingTargetClassification(t *testing.T) {
	tests := []struct {
		amount     string
		achievable bool
		mega       bool
	}{
		{"100", false, false},
		{"999.99", false, false},
		{"1000", true, false},
		{"999999.99", true, false},
		{"1000000", true, true},
	}
	for _, tt := range tests {
		target := mustTarget(t, tt.amount)
		assert.Equal(t, tt.achievable, target.IsAchievable(), tt.amount)
		assert.Equal(t, !tt.achievable, target.RequiresApproval(), tt.amount)
		assert.Equal(t, tt.mega, target.IsMegaCampaign(), tt.amount)
	}
}

func TestFundraisingTargetProgress(t *testing.T) {
	target, err := FundraisingTargetFromAmount(decimal.NewFromInt(1000), domain.EUR)
	require.NoError(t, err)
	raised := eur("600")

	pct, err := target.CalculateProgress(raised)
	require.NoError(t, err)
	assert.Equal(t, 60.0, pct)

	reached50, err := target.HasMilestoneBeenReached(raised, 50)
	require.NoError(t, err)
	assert.True(t, reached50)

	reached75, err := target.HasMilestoneBeenReached(raised, 75)
	require.NoError(t, err)
	assert.False(t, reached75)

	remaining, err := target.RemainingAmount(raised)
	require.NoError(t, err)
	assert.Equal(t, "€400,00", remaining.Format())

	reached, err := target.IsReached(raised)
	require.NoError(t, err)
	assert.False(t, reached)
}

func TestFundraisingTargetOverfunded(t *testing.T) {
	target := mustTarget(t, "1000")

	pct, err := target.CalculateProgress(eur("2500"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, pct)

	pct, err = target.CalculateProgress(eur("1000"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, pct)

	remaining, err := target.RemainingAmount(eur("2500"))
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())

	reached, _ := target.IsReached(eur("1000"))
	exceeded, _ := target.IsExceeded(eur("1000"))
	assert.True(t, reached)
	assert.False(t, exceeded)

	exceeded, _ = target.IsExceeded(eur("1000.01"))
	assert.True(t, exceeded)
}

func TestFundraisingTargetCurrencyMismatch(t *testing.T) {
	target := mustTarget(t, "1000")

	_, err := target.CalculateProgress(usd("10"))
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = target.RemainingAmount(usd("10"))
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = target.IsReached(usd("10"))
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = target.HasMilestoneBeenReached(usd("10"), 25)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)

	other, err := NewFundraisingTarget(usd("1000"))
	require.NoError(t, err)
	_, err = target.Equals(other)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
	_, err = target.IsGreaterThan(other)
	assert.ErrorIs(t, err, errors.ErrCurrencyMismatch)
}

func TestFundraisingTargetMilestones(t *testing.T) {
	target := mustTarget(t, "2000")

	milestones := target.Milestones()
	require.Len(t, milestones, 4)
	want := []string{"€500,00", "€1.000,00", "€1.500,00", "€2.000,00"}
	for i, m := range milestones {
		assert.Equal(t, MilestonePercentages[i], m.Percentage)
		assert.Equal(t, want[i], m.Amount.Format())
	}

	_, err := target.HasMilestoneBeenReached(eur("10"), 0)
	assert.ErrorIs(t, err, errors.ErrInvalidMilestone)
	_, err = target.HasMilestoneBeenReached(eur("10"), 101)
	assert.ErrorIs(t, err, errors.ErrInvalidMilestone)
	_, err = target.MilestoneAmount(150)
	assert.ErrorIs(t, err, errors.ErrInvalidMilestone)

	amount, err := target.MilestoneAmount(10)
	require.NoError(t, err)
	assert.Equal(t, "€200,00", amount.Format())
}

func TestMilestoneMonotonicity(t *testing.T) {
	target := mustTarget(t, "1000")
	for _, raised := range []string{"0", "249.99", "250", "500", "749", "750", "999.99", "1000", "5000"} {
		reachedHigher := false
		for pct := 100; pct >= 1; pct-- {
			reached, err := target.HasMilestoneBeenReached(eur(raised), pct)
			require.NoError(t, err)
			if reachedHigher {
				assert.True(t, reached, "raised %s reached a higher milestone but not %d%%", raised, pct)
			}
			reachedHigher = reachedHigher || reached
		}
	}
}

func TestFundraisingTargetComparison(t *testing.T) {
	a := mustTarget(t, "1000")
	b := mustTarget(t, "1000.00")
	c := mustTarget(t, "5000")

	eq, err := a.Equals(b)
	require.NoError(t, err)
	assert.True(t, eq)

	gt, err := c.IsGreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.Equal(t, "€5.000,00", c.String())
}
