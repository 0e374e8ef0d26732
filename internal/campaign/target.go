package campaign

import (
	"fundraise/pkg/domain"
	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
)

var (
	MinimumTarget            = decimal.NewFromInt(100)
	MaximumTarget            = decimal.NewFromInt(10_000_000)
	RecommendedMinimumTarget = decimal.NewFromInt(1_000)
	MegaCampaignThreshold    = decimal.NewFromInt(1_000_000)
)

// MilestonePercentages are the fixed progress checkpoints of every target.
var MilestonePercentages = []int{25, 50, 75, 100}

// Milestone is one checkpoint of a FundraisingTarget.
type Milestone struct {
	Percentage int          `json:"percentage"`
	Amount     domain.Money `json:"amount"`
}

// FundraisingTarget is a campaign goal bounded to [100, 10,000,000] in its currency.
type FundraisingTarget struct {
	money domain.Money
}

func NewFundraisingTarget(money domain.Money) (FundraisingTarget, error) {
	if !money.Currency().IsValid() {
		return FundraisingTarget{}, errors.New(errors.ErrInvalidCurrency, "invalid currency code %q", string(money.Currency()))
	}
	amount := money.Amount()
	if amount.LessThan(MinimumTarget) {
		floor := domain.MustMoney(MinimumTarget, money.Currency())
		return FundraisingTarget{}, errors.New(errors.ErrTargetBelowMinimum,
			"Fundraising target must be at least %s", floor.Format())
	}
	if amount.GreaterThan(MaximumTarget) {
		ceiling := domain.MustMoney(MaximumTarget, money.Currency())
		return FundraisingTarget{}, errors.New(errors.ErrTargetAboveMaximum,
			"Fundraising target cannot exceed %s", ceiling.Format())
	}
	return FundraisingTarget{money: money}, nil
}

// FundraisingTargetFromAmount builds the Money first, then the target.
func FundraisingTargetFromAmount(amount decimal.Decimal, currency domain.Currency) (FundraisingTarget, error) {
	money, err := domain.NewMoney(amount, currency)
	if err != nil {
		return FundraisingTarget{}, err
	}
	return NewFundraisingTarget(money)
}

func (t FundraisingTarget) Money() domain.Money { return t.money }

func (t FundraisingTarget) Amount() decimal.Decimal { return t.money.Amount() }

func (t FundraisingTarget) Currency() domain.Currency { return t.money.Currency() }

func (t FundraisingTarget) IsAchievable() bool {
	return t.money.Amount().GreaterThanOrEqual(RecommendedMinimumTarget)
}

func (t FundraisingTarget) IsMegaCampaign() bool {
	return t.money.Amount().GreaterThanOrEqual(MegaCampaignThreshold)
}

// RequiresApproval is true for targets under the recommended minimum.
func (t FundraisingTarget) RequiresApproval() bool {
	return t.money.Amount().LessThan(RecommendedMinimumTarget)
}

// CalculateProgress returns the capped percentage of the target raised.
func (t FundraisingTarget) CalculateProgress(raised domain.Money) (float64, error) {
	if err := t.money.SameCurrency(raised); err != nil {
		return 0, err
	}
	return cappedPercentage(raised.Amount(), t.money.Amount()), nil
}

func (t FundraisingTarget) RemainingAmount(raised domain.Money) (domain.Money, error) {
	return t.money.Subtract(raised)
}

func (t FundraisingTarget) IsReached(raised domain.Money) (bool, error) {
	return raised.GreaterThanOrEqual(t.money)
}

func (t FundraisingTarget) IsExceeded(raised domain.Money) (bool, error) {
	return raised.GreaterThan(t.money)
}

func (t FundraisingTarget) Milestones() []Milestone {
	out := make([]Milestone, 0, len(MilestonePercentages))
	for _, pct := range MilestonePercentages {
		out = append(out, Milestone{Percentage: pct, Amount: t.milestoneAmount(pct)})
	}
	return out
}

// MilestoneAmount is the amount needed to reach pct percent of the target.
func (t FundraisingTarget) MilestoneAmount(pct int) (domain.Money, error) {
	if err := validateMilestone(pct); err != nil {
		return domain.Money{}, err
	}
	return t.milestoneAmount(pct), nil
}

func (t FundraisingTarget) HasMilestoneBeenReached(raised domain.Money, pct int) (bool, error) {
	if err := validateMilestone(pct); err != nil {
		return false, err
	}
	return raised.GreaterThanOrEqual(t.milestoneAmount(pct))
}

func (t FundraisingTarget) Equals(other FundraisingTarget) (bool, error) {
	return t.money.Equals(other.money)
}

func (t FundraisingTarget) IsGreaterThan(other FundraisingTarget) (bool, error) {
	return t.money.GreaterThan(other.money)
}

func (t FundraisingTarget) String() string { return t.money.Format() }

func (t FundraisingTarget) milestoneAmount(pct int) domain.Money {
	m, _ := t.money.Multiply(decimal.NewFromInt(int64(pct)).Div(hundred))
	return m
}

func validateMilestone(pct int) error {
	if pct < 1 || pct > 100 {
		return errors.New(errors.ErrInvalidMilestone, "milestone percentage must be between 1 and 100, got %d", pct)
	}
	return nil
}
