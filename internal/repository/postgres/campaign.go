package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"fundraise/internal/campaign"
	"fundraise/pkg/errors"
)

type CampaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

const campaignColumns = `id, user_id, title, goal_amount, current_amount, currency, donations_count,
	status, start_date, end_date, created_at, updated_at`

func (r *CampaignRepository) FindByID(ctx context.Context, id int64) (*campaign.CampaignRecord, error) {
	rec := &campaign.CampaignRecord{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrCampaignNotFound
		}
		return nil, errors.Wrap(err, "failed to find campaign by id")
	}
	return rec, nil
}

func (r *CampaignRepository) FindByUserID(ctx context.Context, userID int64) ([]*campaign.CampaignRecord, error) {
	var records []*campaign.CampaignRecord
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find campaigns by user id")
	}
	return records, nil
}

// FindActive returns campaigns currently accepting donations.
func (r *CampaignRepository) FindActive(ctx context.Context) ([]*campaign.CampaignRecord, error) {
	var records []*campaign.CampaignRecord
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE status = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &records, query, string(campaign.StatusActive))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active campaigns")
	}
	return records, nil
}

// UpdateStatus persists a status change. The caller validates the transition.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int64, status campaign.Status) error {
	query := `UPDATE campaigns SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return errors.Wrap(err, "failed to update campaign status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.ErrCampaignNotFound
	}
	return nil
}

// DonationSummary aggregates completed donations of a campaign. RecentAmount
// covers donations made at or after since. Each anonymous donation counts as
// its own donor.
func (r *CampaignRepository) DonationSummary(ctx context.Context, campaignID int64, since time.Time) (*campaign.DonationSummary, error) {
	summary := &campaign.DonationSummary{}
	query := `
		SELECT
			COUNT(DISTINCT donor_id) + COUNT(*) FILTER (WHERE donor_id IS NULL) AS donor_count,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(MAX(amount), 0) AS largest_donation,
			COALESCE(SUM(amount) FILTER (WHERE created_at >= $2), 0) AS recent_amount
		FROM donations
		WHERE campaign_id = $1 AND status = 'completed'
	`
	err := r.db.GetContext(ctx, summary, query, campaignID, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize donations")
	}
	return summary, nil
}

// UserStats rolls up every campaign owned by userID. Counts and the success
// rate cover all campaigns; amounts only cover campaigns in the user's most
// used currency, which is the currency they are reported in.
func (r *CampaignRepository) UserStats(ctx context.Context, userID int64) (*campaign.UserCampaignStatsData, error) {
	data := &campaign.UserCampaignStatsData{}
	query := `
		WITH main_currency AS (
			SELECT currency FROM campaigns WHERE user_id = $1
			GROUP BY currency ORDER BY COUNT(*) DESC, currency LIMIT 1
		)
		SELECT
			COUNT(*) AS total_campaigns,
			COUNT(*) FILTER (WHERE c.status = 'active') AS active_campaigns,
			COUNT(*) FILTER (WHERE c.status = 'completed') AS completed_campaigns,
			COUNT(*) FILTER (WHERE c.status = 'draft') AS draft_campaigns,
			COALESCE(SUM(c.current_amount) FILTER (WHERE c.currency = m.currency), 0) AS total_amount_raised,
			COALESCE(SUM(c.goal_amount) FILTER (WHERE c.currency = m.currency), 0) AS total_goal_amount,
			COALESCE(SUM(c.donations_count), 0) AS total_donations,
			COALESCE(AVG(LEAST(c.current_amount / NULLIF(c.goal_amount, 0) * 100, 100)), 0) AS average_success_rate,
			COALESCE(MAX(m.currency), '') AS currency
		FROM campaigns c
		LEFT JOIN main_currency m ON TRUE
		WHERE c.user_id = $1
	`
	err := r.db.GetContext(ctx, data, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate user campaign stats")
	}
	return data, nil
}
