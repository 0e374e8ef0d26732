package campaign

import (
	"encoding/json"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
)

// Urgency levels of a DonationProgress.
const (
	UrgencyInactive = "inactive"
	UrgencyExpired  = "expired"
	UrgencyCritical = "critical"
	UrgencyVeryHigh = "very-high"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyNormal   = "normal"
)

var donationUrgencyColors = map[string]string{
	UrgencyInactive: "gray",
	UrgencyExpired:  "gray",
	UrgencyCritical: "red",
	UrgencyVeryHigh: "orange",
	UrgencyHigh:     "yellow",
	UrgencyMedium:   "blue",
	UrgencyNormal:   "green",
}

// Momentum indicators.
const (
	MomentumSurging    = "surging"
	MomentumIncreasing = "increasing"
	MomentumSteady     = "steady"
	MomentumSlowing    = "slowing"
)

var (
	surgingFactor    = decimal.NewFromInt(3)
	increasingFactor = decimal.NewFromFloat(1.5)
	slowingFactor    = decimal.NewFromFloat(0.75)

	boostEndingThreshold  = decimal.NewFromInt(75)
	boostSlowingThreshold = decimal.NewFromInt(90)
)

const endingSoonDays = 7

// DonationProgressParams are the raw aggregates a DonationProgress is built from.
// RecentMomentum is the recent amount raised per day.
type DonationProgressParams struct {
	Raised          domain.Money
	Goal            domain.Money
	DonorCount      int
	DaysRemaining   int
	IsActive        bool
	AverageDonation *domain.Money
	LargestDonation *domain.Money
	RecentMomentum  *domain.Money
}

// DonationProgress is the donor-facing progress view of a campaign.
type DonationProgress struct {
	raised          domain.Money
	goal            domain.Money
	donorCount      int
	daysRemaining   int
	expired         bool
	isActive        bool
	averageDonation *domain.Money
	largestDonation *domain.Money
	recentMomentum  *domain.Money
	explicitAverage bool
}

func NewDonationProgress(p DonationProgressParams) (DonationProgress, error) {
	if err := p.Raised.SameCurrency(p.Goal); err != nil {
		return DonationProgress{}, err
	}
	if !p.Goal.IsPositive() {
		return DonationProgress{}, errors.New(errors.ErrInvalidTarget, "goal must be greater than zero")
	}
	if p.DonorCount < 0 {
		return DonationProgress{}, errors.New(errors.ErrInvalidAmount, "donor count cannot be negative: %d", p.DonorCount)
	}
	for _, opt := range []*domain.Money{p.AverageDonation, p.LargestDonation, p.RecentMomentum} {
		if opt == nil {
			continue
		}
		if err := p.Raised.SameCurrency(*opt); err != nil {
			return DonationProgress{}, err
		}
	}

	dp := DonationProgress{
		raised:          p.Raised,
		goal:            p.Goal,
		donorCount:      p.DonorCount,
		daysRemaining:   p.DaysRemaining,
		expired:         p.DaysRemaining < 0,
		isActive:        p.IsActive,
		largestDonation: copyMoney(p.LargestDonation),
		recentMomentum:  copyMoney(p.RecentMomentum),
	}
	if dp.daysRemaining < 0 {
		dp.daysRemaining = 0
	}

	if p.AverageDonation != nil {
		dp.averageDonation = copyMoney(p.AverageDonation)
		dp.explicitAverage = true
	} else {
		dp.averageDonation = deriveAverage(p.Raised, p.DonorCount)
	}
	return dp, nil
}

func (d DonationProgress) Raised() domain.Money { return d.raised }

func (d DonationProgress) Goal() domain.Money { return d.goal }

func (d DonationProgress) DonorCount() int { return d.donorCount }

// DaysRemaining is never negative; see HasExpired for the original sign.
func (d DonationProgress) DaysRemaining() int { return d.daysRemaining }

func (d DonationProgress) IsActive() bool { return d.isActive }

func (d DonationProgress) AverageDonation() (domain.Money, bool) { return optional(d.averageDonation) }

func (d DonationProgress) LargestDonation() (domain.Money, bool) { return optional(d.largestDonation) }

func (d DonationProgress) RecentMomentum() (domain.Money, bool) { return optional(d.recentMomentum) }

func (d DonationProgress) Remaining() domain.Money {
	remaining, _ := d.goal.Subtract(d.raised)
	return remaining
}

func (d DonationProgress) Percentage() float64 {
	return cappedPercentage(d.raised.Amount(), d.goal.Amount())
}

func (d DonationProgress) HasReachedGoal() bool {
	return d.raised.Amount().GreaterThanOrEqual(d.goal.Amount())
}

func (d DonationProgress) HasExpired() bool { return d.expired }

func (d DonationProgress) IsEndingSoon() bool {
	return d.isActive && d.daysRemaining > 0 && d.daysRemaining <= endingSoonDays
}

// IsEndingToday excludes campaigns whose deadline already passed.
func (d DonationProgress) IsEndingToday() bool {
	return d.isActive && !d.expired && d.daysRemaining == 0
}

func (d DonationProgress) UrgencyLevel() string {
	switch {
	case !d.isActive:
		return UrgencyInactive
	case d.expired:
		return UrgencyExpired
	case d.daysRemaining == 0:
		return UrgencyCritical
	case d.daysRemaining <= 3:
		return UrgencyVeryHigh
	case d.daysRemaining <= 7:
		return UrgencyHigh
	case d.daysRemaining <= 14:
		return UrgencyMedium
	default:
		return UrgencyNormal
	}
}

func (d DonationProgress) UrgencyColor() string {
	return donationUrgencyColors[d.UrgencyLevel()]
}

// MomentumIndicator compares recent momentum with the average donation.
func (d DonationProgress) MomentumIndicator() string {
	if d.recentMomentum == nil || d.averageDonation == nil || !d.averageDonation.IsPositive() {
		return MomentumSteady
	}
	ratio := d.recentMomentum.Amount().Div(d.averageDonation.Amount())
	switch {
	case ratio.GreaterThanOrEqual(surgingFactor):
		return MomentumSurging
	case ratio.GreaterThanOrEqual(increasingFactor):
		return MomentumIncreasing
	case ratio.LessThan(slowingFactor):
		return MomentumSlowing
	default:
		return MomentumSteady
	}
}

// CompletionEstimate is the number of days needed to reach the goal at the
// current momentum. It is absent when the goal would not be reached in time.
func (d DonationProgress) CompletionEstimate() (int, bool) {
	if !d.isActive || d.HasReachedGoal() || d.recentMomentum == nil || !d.recentMomentum.IsPositive() {
		return 0, false
	}
	days := d.Remaining().Amount().Div(d.recentMomentum.Amount()).Ceil().IntPart()
	if days > int64(d.daysRemaining) {
		return 0, false
	}
	return int(days), true
}

func (d DonationProgress) NeedsBoost() bool {
	pct := percentageOf(d.raised.Amount(), d.goal.Amount())
	if (d.IsEndingSoon() || d.IsEndingToday()) && pct.LessThan(boostEndingThreshold) {
		return true
	}
	return d.MomentumIndicator() == MomentumSlowing && pct.LessThan(boostSlowingThreshold)
}

// WithDonation returns a copy with amount added to the raised total and one
// more donor. A derived average is recomputed; an explicit one is kept.
func (d DonationProgress) WithDonation(amount domain.Money) (DonationProgress, error) {
	raised, err := d.raised.Add(amount)
	if err != nil {
		return DonationProgress{}, err
	}
	next := d
	next.raised = raised
	next.donorCount = d.donorCount + 1
	if !d.explicitAverage {
		next.averageDonation = deriveAverage(raised, next.donorCount)
	}
	if d.largestDonation == nil {
		next.largestDonation = copyMoney(&amount)
	} else if bigger, _ := amount.GreaterThan(*d.largestDonation); bigger {
		next.largestDonation = copyMoney(&amount)
	}
	return next, nil
}

func (d DonationProgress) MarshalJSON() ([]byte, error) {
	view := struct {
		Raised            domain.Money  `json:"raised"`
		Goal              domain.Money  `json:"goal"`
		Remaining         domain.Money  `json:"remaining"`
		Percentage        float64       `json:"percentage"`
		DonorCount        int           `json:"donor_count"`
		DaysRemaining     int           `json:"days_remaining"`
		IsActive          bool          `json:"is_active"`
		HasReachedGoal    bool          `json:"has_reached_goal"`
		HasExpired        bool          `json:"has_expired"`
		AverageDonation   *domain.Money `json:"average_donation,omitempty"`
		LargestDonation   *domain.Money `json:"largest_donation,omitempty"`
		RecentMomentum    *domain.Money `json:"recent_momentum,omitempty"`
		UrgencyLevel      string        `json:"urgency_level"`
		UrgencyColor      string        `json:"urgency_color"`
		MomentumIndicator string        `json:"momentum_indicator"`
		CompletionDays    *int          `json:"completion_estimate_days,omitempty"`
		NeedsBoost        bool          `json:"needs_boost"`
	}{
		Raised:            d.raised,
		Goal:              d.goal,
		Remaining:         d.Remaining(),
		Percentage:        d.Percentage(),
		DonorCount:        d.donorCount,
		DaysRemaining:     d.daysRemaining,
		IsActive:          d.isActive,
		HasReachedGoal:    d.HasReachedGoal(),
		HasExpired:        d.expired,
		AverageDonation:   d.averageDonation,
		LargestDonation:   d.largestDonation,
		RecentMomentum:    d.recentMomentum,
		UrgencyLevel:      d.UrgencyLevel(),
		UrgencyColor:      d.UrgencyColor(),
		MomentumIndicator: d.MomentumIndicator(),
		NeedsBoost:        d.NeedsBoost(),
	}
	if days, ok := d.CompletionEstimate(); ok {
		view.CompletionDays = &days
	}
	return json.Marshal(view)
}

func deriveAverage(raised domain.Money, donors int) *domain.Money {
	if donors <= 0 || !raised.IsPositive() {
		return nil
	}
	avg, err := raised.Divide(decimal.NewFromInt(int64(donors)))
	if err != nil {
		return nil
	}
	return &avg
}

func copyMoney(m *domain.Money) *domain.Money {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func optional(m *domain.Money) (domain.Money, bool) {
	if m == nil {
		return domain.Money{}, false
	}
	return *m, true
}
