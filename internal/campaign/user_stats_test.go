package campaign

import (
	"encoding/json"
	"testing"

	"fundraise/pkg/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() UserCampaignStatsData {
	return UserCampaignStatsData{
		TotalCampaigns:     10,
		ActiveCampaigns:    3,
		CompletedCampaigns: 4,
		DraftCampaigns:     2,
		TotalAmountRaised:  dec("15250.60"),
		TotalGoalAmount:    dec("50000"),
		TotalDonations:     312,
		AverageSuccessRate: dec("66.666"),
		Currency:           domain.EUR,
	}
}

func TestUserCampaignStats(t *testing.T) {
	s := NewUserCampaignStats(sampleStats())

	assert.Equal(t, 8, s.TotalPublishedCampaigns())
	assert.True(t, s.HasActiveCampaigns())
	assert.True(t, s.HasDrafts())
	assert.Equal(t, 30.5, s.ProgressPercentage())
	assert.Equal(t, "€15.251", s.FormattedTotalRaised())
	assert.Equal(t, "€50.000", s.FormattedTotalGoal())
	assert.Equal(t, "66.7%", s.FormattedSuccessRate())
	assert.Equal(t, 312, s.TotalDonations())
}

func TestUserCampaignStatsEdgeCases(t *testing.T) {
	s := NewUserCampaignStats(UserCampaignStatsData{Currency: domain.USD})
	assert.Equal(t, 0.0, s.ProgressPercentage())
	assert.False(t, s.HasActiveCampaigns())
	assert.False(t, s.HasDrafts())
	assert.Equal(t, "$0", s.FormattedTotalRaised())
	assert.Equal(t, "0.0%", s.FormattedSuccessRate())

	over := sampleStats()
	over.TotalAmountRaised = dec("80000")
	assert.Equal(t, 100.0, NewUserCampaignStats(over).ProgressPercentage())

	noCurrency := UserCampaignStatsData{TotalAmountRaised: decimal.NewFromInt(1234)}
	assert.Equal(t, "€1.234", NewUserCampaignStats(noCurrency).FormattedTotalRaised())
}

func TestUserCampaignStatsJSON(t *testing.T) {
	data, err := json.Marshal(NewUserCampaignStats(sampleStats()))
	require.NoError(t, err)

	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, float64(10), view["total_campaigns"])
	assert.Equal(t, float64(8), view["total_published_campaigns"])
	assert.Equal(t, "€15.251", view["formatted_total_raised"])
}
