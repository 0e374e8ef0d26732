package campaign

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// percentageOf is min(100, part/whole*100) without rounding. A
// non-positive whole yields zero.
func percentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	pct := part.Div(whole).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// roundedPercentage rounds percentageOf to places. An unreached whole never
// rounds up to 100.
func roundedPercentage(part, whole decimal.Decimal, places int32) decimal.Decimal {
	pct := percentageOf(part, whole).Round(places)
	if part.LessThan(whole) && pct.GreaterThanOrEqual(hundred) {
		pct = hundred.Sub(decimal.New(1, -places))
	}
	return pct
}

// cappedPercentage is the display percentage rounded to two places.
func cappedPercentage(part, whole decimal.Decimal) float64 {
	f, _ := roundedPercentage(part, whole, 2).Float64()
	return f
}

// cappedRatio is min(1, part/whole) rounded to four places.
func cappedRatio(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	r := part.Div(whole)
	if r.GreaterThan(one) {
		r = one
	}
	f, _ := r.Round(4).Float64()
	return f
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
