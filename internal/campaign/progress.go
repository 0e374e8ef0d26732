package campaign

import (
	"encoding/json"
	"math"
	"time"

	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
)

// Performance bands of a CampaignProgress.
const (
	PerformanceCompleted = "completed"
	PerformanceExcellent = "excellent"
	PerformanceGood      = "good"
	PerformanceFair      = "fair"
	PerformanceBehind    = "behind"
	PerformancePoor      = "poor"
)

var performanceColors = map[string]string{
	PerformanceCompleted: "success",
	PerformanceExcellent: "success",
	PerformanceGood:      "primary",
	PerformanceFair:      "info",
	PerformanceBehind:    "warning",
	PerformancePoor:      "danger",
}

const (
	defaultCampaignDays = 30
	excellentPaceRatio  = 1.2
	fairPaceRatio       = 0.75
	behindPaceRatio     = 0.5
)

// CampaignProgressParams carries the base numbers and the caller-supplied
// velocity, projection and schedule expectation.
type CampaignProgressParams struct {
	CampaignID       int64
	GoalAmount       decimal.Decimal
	CurrentAmount    decimal.Decimal
	TotalDays        int
	DaysElapsed      int
	DaysRemaining    int
	DonationsCount   int
	DailyVelocity    decimal.Decimal
	ProjectedAmount  decimal.Decimal
	ExpectedProgress float64
	IsOnTrack        bool
}

// CampaignProgress is the time-normalized progress view of a campaign.
type CampaignProgress struct {
	p          CampaignProgressParams
	percentage float64
	ratio      float64
	completed  bool
}

func NewCampaignProgress(p CampaignProgressParams) (CampaignProgress, error) {
	if p.CurrentAmount.IsNegative() {
		return CampaignProgress{}, errors.New(errors.ErrNegativeAmount, "Current amount cannot be negative")
	}
	if !p.GoalAmount.IsPositive() {
		return CampaignProgress{}, errors.New(errors.ErrInvalidTarget, "Goal amount must be greater than zero")
	}
	if p.CampaignID <= 0 {
		return CampaignProgress{}, errors.New(errors.ErrInvalidCampaignID, "Campaign ID must be positive")
	}
	if p.DonationsCount < 0 {
		return CampaignProgress{}, errors.New(errors.ErrInvalidAmount, "Donations count cannot be negative")
	}
	if p.TotalDays < 0 || p.DaysElapsed < 0 || p.DaysRemaining < 0 {
		return CampaignProgress{}, errors.New(errors.ErrInvalidDayCount, "Day counters cannot be negative")
	}

	return CampaignProgress{
		p:          p,
		percentage: cappedPercentage(p.CurrentAmount, p.GoalAmount),
		ratio:      cappedRatio(p.CurrentAmount, p.GoalAmount),
		completed:  p.CurrentAmount.GreaterThanOrEqual(p.GoalAmount),
	}, nil
}

// CampaignProgressFromRecord derives the day counters from the record's
// start and end dates. With only an end date the run is assumed to start 30
// days before it, or today if that is earlier. Without an end date a 30-day
// window starting today is assumed, which is only meaningful for display.
func CampaignProgressFromRecord(rec CampaignRecord, now time.Time) (CampaignProgress, error) {
	total, elapsed, remaining := defaultCampaignDays, 0, defaultCampaignDays
	start := rec.StartDate
	if start == nil && rec.EndDate != nil && !rec.EndDate.IsZero() {
		s := rec.EndDate.Add(-defaultCampaignDays * day)
		if now.Before(s) {
			s = now
		}
		start = &s
	}
	if start != nil && rec.EndDate != nil && rec.EndDate.After(*start) {
		total = int(math.Ceil(rec.EndDate.Sub(*start).Hours() / 24))
		elapsed = clampDays(int(now.Sub(*start)/day), total)
		remaining = clampDays(TimeRemainingFromRecord(rec, now).DaysRemaining(), total)
	}
	return NewCampaignProgress(timelineParams(rec.ID, rec.GoalAmount, rec.CurrentAmount, rec.DonationsCount, total, elapsed, remaining))
}

// CampaignProgressForTesting synthesizes campaign 1 halfway through a
// 30-day run.
func CampaignProgressForTesting(goal, current decimal.Decimal) (CampaignProgress, error) {
	return NewCampaignProgress(timelineParams(1, goal, current, 0, 30, 15, 15))
}

func timelineParams(id int64, goal, current decimal.Decimal, donations, total, elapsed, remaining int) CampaignProgressParams {
	velocity := decimal.Zero
	if elapsed > 0 {
		velocity = current.Div(decimal.NewFromInt(int64(elapsed))).Round(2)
	}
	projected := current.Add(velocity.Mul(decimal.NewFromInt(int64(remaining))))

	expected := 0.0
	if total > 0 {
		expected = cappedPercentage(decimal.NewFromInt(int64(elapsed)), decimal.NewFromInt(int64(total)))
	}

	return CampaignProgressParams{
		CampaignID:       id,
		GoalAmount:       goal,
		CurrentAmount:    current,
		TotalDays:        total,
		DaysElapsed:      elapsed,
		DaysRemaining:    remaining,
		DonationsCount:   donations,
		DailyVelocity:    velocity,
		ProjectedAmount:  projected,
		ExpectedProgress: expected,
		IsOnTrack:        cappedPercentage(current, goal) >= expected,
	}
}

func clampDays(days, total int) int {
	if days < 0 {
		return 0
	}
	if days > total {
		return total
	}
	return days
}

func (c CampaignProgress) CampaignID() int64 { return c.p.CampaignID }

func (c CampaignProgress) GoalAmount() decimal.Decimal { return c.p.GoalAmount }

func (c CampaignProgress) CurrentAmount() decimal.Decimal { return c.p.CurrentAmount }

func (c CampaignProgress) TotalDays() int { return c.p.TotalDays }

func (c CampaignProgress) DaysElapsed() int { return c.p.DaysElapsed }

func (c CampaignProgress) DaysRemaining() int { return c.p.DaysRemaining }

func (c CampaignProgress) DonationsCount() int { return c.p.DonationsCount }

func (c CampaignProgress) DailyVelocity() decimal.Decimal { return c.p.DailyVelocity }

func (c CampaignProgress) ProjectedAmount() decimal.Decimal { return c.p.ProjectedAmount }

func (c CampaignProgress) ExpectedProgress() float64 { return c.p.ExpectedProgress }

func (c CampaignProgress) IsOnTrack() bool { return c.p.IsOnTrack }

func (c CampaignProgress) Percentage() float64 { return c.percentage }

func (c CampaignProgress) PercentageRounded() int { return int(math.Round(c.percentage)) }

func (c CampaignProgress) ProgressRatio() float64 { return c.ratio }

func (c CampaignProgress) IsCompleted() bool { return c.completed }

func (c CampaignProgress) IsBehindSchedule() bool {
	return c.percentage < c.p.ExpectedProgress
}

func (c CampaignProgress) RemainingAmount() decimal.Decimal {
	return maxDecimal(decimal.Zero, c.p.GoalAmount.Sub(c.p.CurrentAmount))
}

// RequiredDailyAmount is what must be raised per remaining day to finish.
func (c CampaignProgress) RequiredDailyAmount() decimal.Decimal {
	if c.completed || c.p.DaysRemaining == 0 {
		return decimal.Zero
	}
	return c.RemainingAmount().Div(decimal.NewFromInt(int64(c.p.DaysRemaining))).Round(2)
}

// ProjectedPercentage is the projected amount relative to the goal, uncapped.
func (c CampaignProgress) ProjectedPercentage() float64 {
	f, _ := c.p.ProjectedAmount.Div(c.p.GoalAmount).Mul(hundred).Round(2).Float64()
	return f
}

func (c CampaignProgress) WillReachGoal() bool {
	return c.p.ProjectedAmount.GreaterThanOrEqual(c.p.GoalAmount)
}

func (c CampaignProgress) PerformanceStatus() string {
	if c.completed {
		return PerformanceCompleted
	}
	expected := c.p.ExpectedProgress
	if expected <= 0 {
		return PerformanceGood
	}
	pace := c.percentage / expected
	switch {
	case c.p.IsOnTrack && pace >= excellentPaceRatio:
		return PerformanceExcellent
	case c.p.IsOnTrack:
		return PerformanceGood
	case pace >= fairPaceRatio:
		return PerformanceFair
	case pace >= behindPaceRatio:
		return PerformanceBehind
	default:
		return PerformancePoor
	}
}

func (c CampaignProgress) PerformanceColor() string {
	return performanceColors[c.PerformanceStatus()]
}

func (c CampaignProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CampaignID          int64           `json:"campaign_id"`
		GoalAmount          decimal.Decimal `json:"goal_amount"`
		CurrentAmount       decimal.Decimal `json:"current_amount"`
		Percentage          float64         `json:"percentage"`
		PercentageRounded   int             `json:"percentage_rounded"`
		ProgressRatio       float64         `json:"progress_ratio"`
		TotalDays           int             `json:"total_days"`
		DaysElapsed         int             `json:"days_elapsed"`
		DaysRemaining       int             `json:"days_remaining"`
		DonationsCount      int             `json:"donations_count"`
		DailyVelocity       decimal.Decimal `json:"daily_velocity"`
		ProjectedAmount     decimal.Decimal `json:"projected_amount"`
		ExpectedProgress    float64         `json:"expected_progress"`
		IsOnTrack           bool            `json:"is_on_track"`
		IsCompleted         bool            `json:"is_completed"`
		IsBehindSchedule    bool            `json:"is_behind_schedule"`
		RequiredDailyAmount decimal.Decimal `json:"required_daily_amount"`
		PerformanceStatus   string          `json:"performance_status"`
		PerformanceColor    string          `json:"performance_color"`
	}{
		CampaignID:          c.p.CampaignID,
		GoalAmount:          c.p.GoalAmount,
		CurrentAmount:       c.p.CurrentAmount,
		Percentage:          c.percentage,
		PercentageRounded:   c.PercentageRounded(),
		ProgressRatio:       c.ratio,
		TotalDays:           c.p.TotalDays,
		DaysElapsed:         c.p.DaysElapsed,
		DaysRemaining:       c.p.DaysRemaining,
		DonationsCount:      c.p.DonationsCount,
		DailyVelocity:       c.p.DailyVelocity,
		ProjectedAmount:     c.p.ProjectedAmount,
		ExpectedProgress:    c.p.ExpectedProgress,
		IsOnTrack:           c.p.IsOnTrack,
		IsCompleted:         c.completed,
		IsBehindSchedule:    c.IsBehindSchedule(),
		RequiredDailyAmount: c.RequiredDailyAmount(),
		PerformanceStatus:   c.PerformanceStatus(),
		PerformanceColor:    c.PerformanceColor(),
	})
}
