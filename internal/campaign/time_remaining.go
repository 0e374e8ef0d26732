package campaign

import (
	"encoding/json"
	"fmt"
	"time"
)

// Deadline urgency levels.
const (
	DeadlineExpired  = "expired"
	DeadlineCritical = "critical"
	DeadlineUrgent   = "urgent"
	DeadlineWarning  = "warning"
	DeadlineNormal   = "normal"
)

// DefaultExpiringSoonDays is the threshold used by IsExpiringSoon.
const DefaultExpiringSoonDays = 7

// noDeadlineHorizon stands in for a missing end date.
const noDeadlineHorizon = 100

const day = 24 * time.Hour

// TimeRemaining measures the distance between now and a deadline. Nothing is
// cached: every query is derived from the two instants.
type TimeRemaining struct {
	endDate time.Time
	now     time.Time
}

func NewTimeRemaining(endDate, now time.Time) TimeRemaining {
	return TimeRemaining{endDate: endDate, now: now}
}

// TimeRemainingFromRecord treats a missing end date as a deadline roughly a
// century away so open-ended campaigns never look urgent.
func TimeRemainingFromRecord(rec CampaignRecord, now time.Time) TimeRemaining {
	if rec.EndDate == nil || rec.EndDate.IsZero() {
		return NewTimeRemaining(now.AddDate(noDeadlineHorizon, 0, 0), now)
	}
	return NewTimeRemaining(*rec.EndDate, now)
}

func (t TimeRemaining) EndDate() time.Time { return t.endDate }

func (t TimeRemaining) CurrentDate() time.Time { return t.now }

// DaysRemaining is the whole number of days left, truncated toward zero.
// It is negative once the deadline has passed by a day or more.
func (t TimeRemaining) DaysRemaining() int {
	return int(t.endDate.Sub(t.now) / day)
}

func (t TimeRemaining) HoursRemaining() int {
	return int(t.endDate.Sub(t.now) / time.Hour)
}

func (t TimeRemaining) MinutesRemaining() int {
	return int(t.endDate.Sub(t.now) / time.Minute)
}

// IsExpired compares instants, independent of the day rounding above.
func (t TimeRemaining) IsExpired() bool {
	return !t.endDate.After(t.now)
}

func (t TimeRemaining) IsExpiringSoon() bool {
	return t.IsExpiringWithin(DefaultExpiringSoonDays)
}

func (t TimeRemaining) IsExpiringWithin(days int) bool {
	return !t.IsExpired() && t.DaysRemaining() <= days
}

func (t TimeRemaining) TimeRemainingText() string {
	if t.IsExpired() {
		return "Expired"
	}
	if days := t.DaysRemaining(); days >= 1 {
		return fmt.Sprintf("%d %s remaining", days, plural(days, "day", "days"))
	}
	if hours := t.HoursRemaining(); hours >= 1 {
		return fmt.Sprintf("%d %s remaining", hours, plural(hours, "hour", "hours"))
	}
	minutes := t.MinutesRemaining()
	if minutes < 1 {
		return "less than a minute remaining"
	}
	return fmt.Sprintf("%d %s remaining", minutes, plural(minutes, "minute", "minutes"))
}

func (t TimeRemaining) UrgencyLevel() string {
	if t.IsExpired() {
		return DeadlineExpired
	}
	switch days := t.DaysRemaining(); {
	case days <= 1:
		return DeadlineCritical
	case days <= 3:
		return DeadlineUrgent
	case days <= 7:
		return DeadlineWarning
	default:
		return DeadlineNormal
	}
}

func (t TimeRemaining) UrgencyColor() string {
	switch t.UrgencyLevel() {
	case DeadlineExpired, DeadlineCritical:
		return "red"
	case DeadlineUrgent:
		return "orange"
	case DeadlineWarning:
		return "yellow"
	default:
		return "green"
	}
}

func (t TimeRemaining) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EndDate       time.Time `json:"end_date"`
		DaysRemaining int       `json:"days_remaining"`
		IsExpired     bool      `json:"is_expired"`
		Text          string    `json:"text"`
		UrgencyLevel  string    `json:"urgency_level"`
		UrgencyColor  string    `json:"urgency_color"`
	}{t.endDate, t.DaysRemaining(), t.IsExpired(), t.TimeRemainingText(), t.UrgencyLevel(), t.UrgencyColor()})
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
