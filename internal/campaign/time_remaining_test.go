package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func remainingIn(d time.Duration) TimeRemaining {
	return NewTimeRemaining(fixedNow.Add(d), fixedNow)
}

func TestTimeRemainingFiveDays(t *testing.T) {
	tr := remainingIn(5 * day)

	assert.Equal(t, 5, tr.DaysRemaining())
	assert.Equal(t, 120, tr.HoursRemaining())
	assert.Equal(t, 7200, tr.MinutesRemaining())
	assert.Equal(t, "5 days remaining", tr.TimeRemainingText())
	assert.Equal(t, DeadlineWarning, tr.UrgencyLevel())
	assert.Equal(t, "yellow", tr.UrgencyColor())
	assert.False(t, tr.IsExpired())
	assert.True(t, tr.IsExpiringSoon())
}

func TestTimeRemainingText(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{day, "1 day remaining"},
		{day + 5*time.Hour, "1 day remaining"},
		{3 * time.Hour, "3 hours remaining"},
		{time.Hour + 59*time.Minute, "1 hour remaining"},
		{45 * time.Minute, "45 minutes remaining"},
		{time.Minute + 30*time.Second, "1 minute remaining"},
		{30 * time.Second, "less than a minute remaining"},
		{time.Nanosecond, "less than a minute remaining"},
		{0, "Expired"},
		{-2 * day, "Expired"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, remainingIn(tt.in).TimeRemainingText(), tt.in.String())
	}
}

func TestTimeRemainingExpiry(t *testing.T) {
	past := remainingIn(-36 * time.Hour)
	assert.True(t, past.IsExpired())
	assert.Equal(t, -1, past.DaysRemaining())
	assert.Equal(t, -36, past.HoursRemaining())
	assert.False(t, past.IsExpiringSoon())

	// expired by the instant even though the day count truncates to zero
	justPassed := remainingIn(-time.Minute)
	assert.True(t, justPassed.IsExpired())
	assert.Equal(t, 0, justPassed.DaysRemaining())

	assert.True(t, remainingIn(0).IsExpired())
}

func TestTimeRemainingUrgency(t *testing.T) {
	tests := []struct {
		in    time.Duration
		level string
		color string
	}{
		{-time.Hour, DeadlineExpired, "red"},
		{2 * time.Hour, DeadlineCritical, "red"},
		{day + time.Hour, DeadlineCritical, "red"},
		{2 * day, DeadlineUrgent, "orange"},
		{3*day + time.Hour, DeadlineUrgent, "orange"},
		{4 * day, DeadlineWarning, "yellow"},
		{7 * day, DeadlineWarning, "yellow"},
		{8 * day, DeadlineNormal, "green"},
	}
	for _, tt := range tests {
		tr := remainingIn(tt.in)
		assert.Equal(t, tt.level, tr.UrgencyLevel(), tt.in.String())
		assert.Equal(t, tt.color, tr.UrgencyColor(), tt.in.String())
	}
}

func TestTimeRemainingExpiringWithin(t *testing.T) {
	tr := remainingIn(10 * day)
	assert.False(t, tr.IsExpiringSoon())
	assert.True(t, tr.IsExpiringWithin(10))
	assert.False(t, tr.IsExpiringWithin(9))
}

func TestTimeRemainingFromRecord(t *testing.T) {
	end := fixedNow.Add(2 * day)
	tr := TimeRemainingFromRecord(CampaignRecord{EndDate: &end}, fixedNow)
	assert.Equal(t, 2, tr.DaysRemaining())
	assert.Equal(t, fixedNow, tr.CurrentDate())

	open := TimeRemainingFromRecord(CampaignRecord{}, fixedNow)
	assert.Equal(t, fixedNow.AddDate(100, 0, 0), open.EndDate())
	assert.False(t, open.IsExpired())
	assert.False(t, open.IsExpiringSoon())
	assert.Equal(t, DeadlineNormal, open.UrgencyLevel())
}
