package campaign

import (
	"fmt"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"
)

// Goal is a target/current pair that grows by replacement: AddAmount returns
// a new Goal and leaves the receiver untouched.
type Goal struct {
	target  domain.Money
	current domain.Money
}

func NewGoal(target, current domain.Money) (Goal, error) {
	if !target.IsPositive() {
		return Goal{}, errors.New(errors.ErrInvalidTarget, "target amount must be greater than zero")
	}
	if err := target.SameCurrency(current); err != nil {
		return Goal{}, err
	}
	return Goal{target: target, current: current}, nil
}

func (g Goal) TargetAmount() domain.Money { return g.target }

func (g Goal) CurrentAmount() domain.Money { return g.current }

func (g Goal) ProgressPercentage() float64 {
	return cappedPercentage(g.current.Amount(), g.target.Amount())
}

func (g Goal) RemainingAmount() domain.Money {
	remaining, _ := g.target.Subtract(g.current)
	return remaining
}

func (g Goal) HasReachedTarget() bool {
	return g.current.Amount().GreaterThanOrEqual(g.target.Amount())
}

func (g Goal) AddAmount(amount domain.Money) (Goal, error) {
	current, err := g.current.Add(amount)
	if err != nil {
		return Goal{}, err
	}
	return Goal{target: g.target, current: current}, nil
}

// String renders "<current> / <target> (<percentage>%)".
func (g Goal) String() string {
	pct := roundedPercentage(g.current.Amount(), g.target.Amount(), 1)
	return fmt.Sprintf("%s / %s (%s%%)", g.current.Format(), g.target.Format(), pct.StringFixed(1))
}
