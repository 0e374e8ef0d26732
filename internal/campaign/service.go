// ==============================================================================
// CAMPAIGN SERVICE - internal/campaign/service.go
// ==============================================================================
package campaign

import (
	"context"
	"fmt"
	"time"

	"fundraise/pkg/domain"
	"fundraise/pkg/errors"
	"fundraise/pkg/logger"
	"fundraise/pkg/validator"

	"github.com/shopspring/decimal"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*CampaignRecord, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	DonationSummary(ctx context.Context, campaignID int64, since time.Time) (*DonationSummary, error)
	UserStats(ctx context.Context, userID int64) (*UserCampaignStatsData, error)
}

// StatsCache stores JSON snapshots. Get returns errors.ErrCacheMiss for
// unknown keys.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Options struct {
	DefaultCurrency  domain.Currency
	ExpiringSoonDays int
	MomentumWindow   time.Duration
	StatsCacheTTL    time.Duration
	Clock            domain.Clock
}

func (o Options) withDefaults() Options {
	if !o.DefaultCurrency.IsValid() {
		o.DefaultCurrency = domain.EUR
	}
	if o.ExpiringSoonDays <= 0 {
		o.ExpiringSoonDays = DefaultExpiringSoonDays
	}
	if o.MomentumWindow < day {
		o.MomentumWindow = 7 * day
	}
	if o.StatsCacheTTL <= 0 {
		o.StatsCacheTTL = 5 * time.Minute
	}
	if o.Clock == nil {
		o.Clock = domain.SystemClock
	}
	return o
}

type Service struct {
	repo      Repository
	cache     StatsCache
	validator *validator.Validator
	logger    logger.Logger
	opts      Options
}

// NewService wires the campaign read model. cache may be nil.
func NewService(repo Repository, cache StatsCache, log logger.Logger, opts Options) (*Service, error) {
	v := validator.New()
	if err := v.RegisterEnum("campaign_status", func(s string) bool {
		return Status(s).IsValid()
	}); err != nil {
		return nil, errors.Wrap(err, "failed to register campaign_status validation")
	}
	return &Service{
		repo:      repo,
		cache:     cache,
		validator: v,
		logger:    log,
		opts:      opts.withDefaults(),
	}, nil
}

// Record loads a campaign and checks it is well formed.
func (s *Service) Record(ctx context.Context, id int64) (*CampaignRecord, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrInvalidCampaignID, "Campaign ID must be positive")
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(rec); err != nil {
		s.logger.Warn("Malformed campaign record", map[string]interface{}{
			"campaign_id": id,
			"error":       err.Error(),
		})
		return nil, errors.New(errors.ErrInvalidRecord, "campaign %d: %v", id, err)
	}
	return rec, nil
}

func (s *Service) Progress(ctx context.Context, id int64) (CampaignProgress, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return CampaignProgress{}, err
	}
	return CampaignProgressFromRecord(*rec, s.opts.Clock())
}

func (s *Service) TimeRemaining(ctx context.Context, id int64) (TimeRemaining, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return TimeRemaining{}, err
	}
	return TimeRemainingFromRecord(*rec, s.opts.Clock()), nil
}

// IsExpiringSoon applies the configured expiring-soon threshold.
func (s *Service) IsExpiringSoon(ctx context.Context, id int64) (bool, error) {
	tr, err := s.TimeRemaining(ctx, id)
	if err != nil {
		return false, err
	}
	return tr.IsExpiringWithin(s.opts.ExpiringSoonDays), nil
}

func (s *Service) Target(ctx context.Context, id int64) (FundraisingTarget, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return FundraisingTarget{}, err
	}
	return FundraisingTargetFromAmount(rec.GoalAmount, rec.Currency)
}

// DonationProgress combines the record with donation aggregates. Recent
// momentum is the amount raised inside the momentum window, per day.
func (s *Service) DonationProgress(ctx context.Context, id int64) (DonationProgress, error) {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return DonationProgress{}, err
	}
	now := s.opts.Clock()
	summary, err := s.repo.DonationSummary(ctx, id, now.Add(-s.opts.MomentumWindow))
	if err != nil {
		return DonationProgress{}, err
	}

	raised, err := rec.Raised()
	if err != nil {
		return DonationProgress{}, err
	}
	goal, err := rec.Goal()
	if err != nil {
		return DonationProgress{}, err
	}

	tr := TimeRemainingFromRecord(*rec, now)
	days := tr.DaysRemaining()
	if tr.IsExpired() && days >= 0 {
		days = -1
	}

	params := DonationProgressParams{
		Raised:        raised,
		Goal:          goal,
		DonorCount:    summary.DonorCount,
		DaysRemaining: days,
		IsActive:      rec.Status.IsActive(),
	}
	if summary.LargestDonation.IsPositive() {
		largest, err := domain.NewMoney(summary.LargestDonation, rec.Currency)
		if err != nil {
			return DonationProgress{}, err
		}
		params.LargestDonation = &largest
	}
	windowDays := decimal.NewFromInt(int64(s.opts.MomentumWindow / day))
	momentum, err := domain.NewMoney(summary.RecentAmount.Div(windowDays).Round(2), rec.Currency)
	if err != nil {
		return DonationProgress{}, err
	}
	params.RecentMomentum = &momentum

	return NewDonationProgress(params)
}

// UserStats reads through the stats cache. Cache failures are logged and
// fall back to the repository.
func (s *Service) UserStats(ctx context.Context, userID int64) (UserCampaignStats, error) {
	key := userStatsKey(userID)
	if s.cache != nil {
		var cached UserCampaignStatsData
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return NewUserCampaignStats(cached), nil
		}
		if !errors.Is(err, errors.ErrCacheMiss) {
			s.logger.Warn("Stats cache read failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	data, err := s.repo.UserStats(ctx, userID)
	if err != nil {
		return UserCampaignStats{}, err
	}
	if !data.Currency.IsValid() {
		data.Currency = s.opts.DefaultCurrency
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data, s.opts.StatsCacheTTL); err != nil {
			s.logger.Warn("Stats cache write failed", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return NewUserCampaignStats(*data), nil
}

// ValidateTransition checks a status change against the campaign's current status.
func (s *Service) ValidateTransition(ctx context.Context, id int64, target Status) error {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return err
	}
	return s.validateTransition(rec, target)
}

// ApplyTransition validates and persists a status change, then drops the
// owner's cached stats.
func (s *Service) ApplyTransition(ctx context.Context, id int64, target Status) error {
	rec, err := s.Record(ctx, id)
	if err != nil {
		return err
	}
	if err := s.validateTransition(rec, target); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return err
	}

	s.logger.Info("Campaign status changed", map[string]interface{}{
		"campaign_id": id,
		"from_status": rec.Status,
		"to_status":   target,
	})

	if s.cache != nil {
		if err := s.cache.Delete(ctx, userStatsKey(rec.UserID)); err != nil {
			s.logger.Warn("Stats cache invalidation failed", map[string]interface{}{
				"user_id": rec.UserID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

func (s *Service) validateTransition(rec *CampaignRecord, target Status) error {
	if err := rec.Status.ValidateTransition(target); err != nil {
		s.logger.Warn("Transition rejected", map[string]interface{}{
			"campaign_id": rec.ID,
			"from_status": rec.Status,
			"to_status":   target,
		})
		return err
	}
	return nil
}

func userStatsKey(userID int64) string {
	return fmt.Sprintf("user_stats:%d", userID)
}
