package campaign

import (
	"encoding/json"
	"fmt"

	"fundraise/pkg/domain"

	"github.com/shopspring/decimal"
)

// UserCampaignStatsData is the raw rollup of one user's campaigns, as read
// from storage or a cache entry.
type UserCampaignStatsData struct {
	TotalCampaigns     int             `json:"total_campaigns" db:"total_campaigns"`
	ActiveCampaigns    int             `json:"active_campaigns" db:"active_campaigns"`
	CompletedCampaigns int             `json:"completed_campaigns" db:"completed_campaigns"`
	DraftCampaigns     int             `json:"draft_campaigns" db:"draft_campaigns"`
	TotalAmountRaised  decimal.Decimal `json:"total_amount_raised" db:"total_amount_raised"`
	TotalGoalAmount    decimal.Decimal `json:"total_goal_amount" db:"total_goal_amount"`
	TotalDonations     int             `json:"total_donations" db:"total_donations"`
	AverageSuccessRate decimal.Decimal `json:"average_success_rate" db:"average_success_rate"`
	Currency           domain.Currency `json:"currency" db:"currency"`
}

// UserCampaignStats is a read-only snapshot over UserCampaignStatsData.
type UserCampaignStats struct {
	data UserCampaignStatsData
}

func NewUserCampaignStats(data UserCampaignStatsData) UserCampaignStats {
	return UserCampaignStats{data: data}
}

// Data returns a copy of the underlying rollup.
func (s UserCampaignStats) Data() UserCampaignStatsData { return s.data }

func (s UserCampaignStats) TotalCampaigns() int { return s.data.TotalCampaigns }

func (s UserCampaignStats) ActiveCampaigns() int { return s.data.ActiveCampaigns }

func (s UserCampaignStats) CompletedCampaigns() int { return s.data.CompletedCampaigns }

func (s UserCampaignStats) DraftCampaigns() int { return s.data.DraftCampaigns }

func (s UserCampaignStats) TotalAmountRaised() decimal.Decimal { return s.data.TotalAmountRaised }

func (s UserCampaignStats) TotalGoalAmount() decimal.Decimal { return s.data.TotalGoalAmount }

func (s UserCampaignStats) TotalDonations() int { return s.data.TotalDonations }

func (s UserCampaignStats) AverageSuccessRate() decimal.Decimal { return s.data.AverageSuccessRate }

func (s UserCampaignStats) ProgressPercentage() float64 {
	return cappedPercentage(s.data.TotalAmountRaised, s.data.TotalGoalAmount)
}

func (s UserCampaignStats) FormattedTotalRaised() string {
	return s.formatWhole(s.data.TotalAmountRaised)
}

func (s UserCampaignStats) FormattedTotalGoal() string {
	return s.formatWhole(s.data.TotalGoalAmount)
}

func (s UserCampaignStats) FormattedSuccessRate() string {
	return fmt.Sprintf("%s%%", s.data.AverageSuccessRate.StringFixed(1))
}

func (s UserCampaignStats) HasActiveCampaigns() bool { return s.data.ActiveCampaigns > 0 }

func (s UserCampaignStats) HasDrafts() bool { return s.data.DraftCampaigns > 0 }

func (s UserCampaignStats) TotalPublishedCampaigns() int {
	return s.data.TotalCampaigns - s.data.DraftCampaigns
}

func (s UserCampaignStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserCampaignStatsData
		ProgressPercentage      float64 `json:"progress_percentage"`
		FormattedTotalRaised    string  `json:"formatted_total_raised"`
		FormattedTotalGoal      string  `json:"formatted_total_goal"`
		FormattedSuccessRate    string  `json:"formatted_success_rate"`
		TotalPublishedCampaigns int     `json:"total_published_campaigns"`
	}{
		UserCampaignStatsData:   s.data,
		ProgressPercentage:      s.ProgressPercentage(),
		FormattedTotalRaised:    s.FormattedTotalRaised(),
		FormattedTotalGoal:      s.FormattedTotalGoal(),
		FormattedSuccessRate:    s.FormattedSuccessRate(),
		TotalPublishedCampaigns: s.TotalPublishedCampaigns(),
	})
}

func (s UserCampaignStats) formatWhole(amount decimal.Decimal) string {
	currency := s.data.Currency
	if !currency.IsValid() {
		currency = domain.EUR
	}
	m, err := domain.NewMoney(amount, currency)
	if err != nil {
		m = domain.Zero(currency)
	}
	return m.FormatRounded(0)
}
