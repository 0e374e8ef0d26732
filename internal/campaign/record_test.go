package campaign

import (
	"testing"
	"time"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFromAttributesParsesStrings(t *testing.T) {
	rec, err := RecordFromAttributes(map[string]interface{}{
		"id":              "17",
		"user_id":         float64(4),
		"title":           "Clean water",
		"goal_amount":     "2500.00",
		"current_amount":  "1250.5",
		"donations_count": "31",
		"status":          " Active ",
		"currency":        "usd",
		"start_date":      "2024-03-01",
		"end_date":        "2024-04-01T00:00:00Z",
	}, domain.EUR)
	require.NoError(t, err)

	assert.Equal(t, int64(17), rec.ID)
	assert.Equal(t, int64(4), rec.UserID)
	assert.Equal(t, "Clean water", rec.Title)
	assert.True(t, rec.GoalAmount.Equal(dec("2500")))
	assert.True(t, rec.CurrentAmount.Equal(dec("1250.5")))
	assert.Equal(t, 31, rec.DonationsCount)
	assert.Equal(t, StatusActive, rec.Status)
	assert.Equal(t, domain.USD, rec.Currency)
	require.NotNil(t, rec.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *rec.StartDate)
	require.NotNil(t, rec.EndDate)

	raised, err := rec.Raised()
	require.NoError(t, err)
	assert.Equal(t, "$1,250.50", raised.Format())
}

func TestRecordFromAttributesDefaults(t *testing.T) {
	rec, err := RecordFromAttributes(map[string]interface{}{
		"id":             5,
		"goal_amount":    1000,
		"current_amount": nil,
	}, domain.GBP)
	require.NoError(t, err)

	assert.Equal(t, domain.GBP, rec.Currency)
	assert.Equal(t, StatusDraft, rec.Status)
	assert.True(t, rec.CurrentAmount.IsZero())
	assert.Nil(t, rec.EndDate)
}

func TestRecordFromAttributesErrors(t *testing.T) {
	_, err := RecordFromAttributes(map[string]interface{}{"goal_amount": "lots"}, domain.EUR)
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)

	_, err = RecordFromAttributes(map[string]interface{}{"id": "x"}, domain.EUR)
	assert.ErrorIs(t, err, errors.ErrInvalidRecord)

	_, err = RecordFromAttributes(map[string]interface{}{"status": "archived"}, domain.EUR)
	assert.ErrorIs(t, err, errors.ErrUnknownStatus)

	_, err = RecordFromAttributes(map[string]interface{}{"end_date": "next week"}, domain.EUR)
	assert.ErrorIs(t, err, errors.ErrInvalidRecord)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"1500.50", "1500.5"},
		{" 12 ", "12"},
		{"", "0"},
		{nil, "0"},
		{42, "42"},
		{int64(7), "7"},
		{12.25, "12.25"},
		{decimal.NewFromInt(3), "3"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "%v", tt.in)
	}

	_, err := ParseAmount([]byte("1"))
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
}
