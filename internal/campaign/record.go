package campaign

import (
	"strconv"
	"strings"
	"time"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"

	"github.com/shopspring/decimal"
)

// CampaignRecord is a persisted campaign row as handed over by a repository.
type CampaignRecord struct {
	ID             int64           `json:"id" db:"id" validate:"gt=0"`
	UserID         int64           `json:"user_id" db:"user_id" validate:"gte=0"`
	Title          string          `json:"title" db:"title"`
	GoalAmount     decimal.Decimal `json:"goal_amount" db:"goal_amount" validate:"gt=0"`
	CurrentAmount  decimal.Decimal `json:"current_amount" db:"current_amount" validate:"gte=0"`
	Currency       domain.Currency `json:"currency" db:"currency" validate:"currency_code"`
	DonationsCount int             `json:"donations_count" db:"donations_count" validate:"gte=0"`
	Status         Status          `json:"status" db:"status" validate:"campaign_status"`
	StartDate      *time.Time      `json:"start_date,omitempty" db:"start_date"`
	EndDate        *time.Time      `json:"end_date,omitempty" db:"end_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// DonationSummary aggregates the donations of one campaign.
type DonationSummary struct {
	DonorCount      int             `json:"donor_count" db:"donor_count"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	LargestDonation decimal.Decimal `json:"largest_donation" db:"largest_donation"`
	RecentAmount    decimal.Decimal `json:"recent_amount" db:"recent_amount"`
}

// Goal returns the goal amount as Money.
func (r CampaignRecord) Goal() (domain.Money, error) {
	return domain.NewMoney(r.GoalAmount, r.Currency)
}

// Raised returns the current amount as Money.
func (r CampaignRecord) Raised() (domain.Money, error) {
	return domain.NewMoney(r.CurrentAmount, r.Currency)
}

// RecordFromAttributes builds a record from loosely typed attributes, such as
// a decoded JSON payload or a cache entry. Numeric fields may be strings.
func RecordFromAttributes(attrs map[string]interface{}, defaultCurrency domain.Currency) (CampaignRecord, error) {
	var rec CampaignRecord
	var err error

	if rec.ID, err = parseInt(attrs["id"]); err != nil {
		return rec, errors.Wrap(err, "id")
	}
	if rec.UserID, err = parseInt(attrs["user_id"]); err != nil {
		return rec, errors.Wrap(err, "user_id")
	}
	if rec.GoalAmount, err = ParseAmount(attrs["goal_amount"]); err != nil {
		return rec, errors.Wrap(err, "goal_amount")
	}
	if rec.CurrentAmount, err = ParseAmount(attrs["current_amount"]); err != nil {
		return rec, errors.Wrap(err, "current_amount")
	}
	donations, err := parseInt(attrs["donations_count"])
	if err != nil {
		return rec, errors.Wrap(err, "donations_count")
	}
	rec.DonationsCount = int(donations)

	if title, ok := attrs["title"].(string); ok {
		rec.Title = title
	}

	rec.Currency = defaultCurrency
	if raw, ok := attrs["currency"].(string); ok && strings.TrimSpace(raw) != "" {
		if rec.Currency, err = domain.ParseCurrency(raw); err != nil {
			return rec, err
		}
	}

	rec.Status = StatusDraft
	if raw, ok := attrs["status"].(string); ok && strings.TrimSpace(raw) != "" {
		if rec.Status, err = ParseStatus(raw); err != nil {
			return rec, err
		}
	}

	if rec.StartDate, err = parseTime(attrs["start_date"]); err != nil {
		return rec, errors.Wrap(err, "start_date")
	}
	if rec.EndDate, err = parseTime(attrs["end_date"]); err != nil {
		return rec, errors.Wrap(err, "end_date")
	}
	return rec, nil
}

// ParseAmount accepts decimals, numbers and numeric strings. Nil and empty
// strings are zero.
func ParseAmount(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, errors.New(errors.ErrInvalidAmount, "invalid amount %q", val)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	default:
		return decimal.Zero, errors.New(errors.ErrInvalidAmount, "unsupported amount type %T", v)
	}
}

func parseInt(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case float64:
		if val != float64(int64(val)) {
			return 0, errors.New(errors.ErrInvalidRecord, "expected whole number, got %v", val)
		}
		return int64(val), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, errors.New(errors.ErrInvalidRecord, "invalid integer %q", val)
		}
		return n, nil
	default:
		return 0, errors.New(errors.ErrInvalidRecord, "unsupported integer type %T", v)
	}
}

func parseTime(v interface{}) (*time.Time, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &val, nil
	case *time.Time:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, errors.New(errors.ErrInvalidRecord, "invalid timestamp %q", val)
	default:
		return nil, errors.New(errors.ErrInvalidRecord, "unsupported timestamp type %T", v)
	}
}
