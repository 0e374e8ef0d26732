// ==============================================================================
// CAMPAIGN STATS CLI - cmd/campaignstats/main.go
// ==============================================================================
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"fundraise/internal/campaign"
	"fundraise/internal/notification"
	"fundraise/internal/repository/postgres"
	"fundraise/internal/scheduler"
	"fundraise/pkg/cache"
	"fundraise/pkg/config"
	"fundraise/pkg/domain"
	"fundraise/pkg/logger"
	"fundraise/pkg/mailer"
)

const usage = `Usage: campaignstats <command> [args]

Commands:
  progress <campaign-id>                 timeline progress and performance
  donations <campaign-id>                donor-facing progress, urgency and momentum
  remaining <campaign-id>                time left until the end date
  target <campaign-id>                   fundraising target and milestones
  stats <user-id>                        rollup of a user's campaigns
  transition <campaign-id> <status>      check a status change
  apply <campaign-id> <status>           check and persist a status change
  milestones <campaign-id> <previous>    notify milestones crossed since previous raised amount
  watch [interval]                       poll active campaigns and notify new milestones (default 1m)`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := logger.NewWithLevel(cfg.Service.Name, logger.ParseLevel(cfg.Service.LogLevel), os.Stderr)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := cfg.ValidateCore(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	var statsCache campaign.StatsCache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, stats cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer rc.Close()
			statsCache = rc
		}
	}

	repo := postgres.NewCampaignRepository(db)
	svc, err := campaign.NewService(repo, statsCache, log, campaign.Options{
		DefaultCurrency:  domain.Currency(cfg.Campaign.DefaultCurrency),
		ExpiringSoonDays: cfg.Campaign.ExpiringSoonDays,
		MomentumWindow:   cfg.Campaign.MomentumWindow,
		StatsCacheTTL:    cfg.Campaign.StatsCacheTTL,
		Clock:            domain.SystemClock,
	})
	if err != nil {
		log.Fatal("Failed to build campaign service", map[string]interface{}{"error": err.Error()})
	}
	var sender notification.Sender = notification.NewLogSender(log)
	if cfg.Mail.Host != "" {
		m := mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			UseTLS:   cfg.Mail.UseTLS,
		})
		sender = notification.NewEmailSender(m, cfg.Mail.NotifyTo, log)
	}
	notifier := notification.NewMilestoneNotifier(sender, log, domain.SystemClock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &app{svc: svc, notifier: notifier, source: repo, logger: log}, os.Args[1:], os.Stdout); err != nil {
		log.Error("Command failed", map[string]interface{}{
			"command": os.Args[1],
			"error":   err.Error(),
		})
		stop()
		db.Close()
		os.Exit(1)
	}
}

type app struct {
	svc      *campaign.Service
	notifier *notification.MilestoneNotifier
	source   scheduler.CampaignSource
	logger   logger.Logger
}

func run(ctx context.Context, a *app, args []string, out io.Writer) error {
	if len(args) > 0 && args[0] == "watch" {
		return watch(ctx, a, args[1:])
	}
	if len(args) < 2 {
		return fmt.Errorf("missing argument\n%s", usage)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[1])
	}

	var result interface{}
	switch args[0] {
	case "progress":
		result, err = a.svc.Progress(ctx, id)

	case "donations":
		result, err = a.svc.DonationProgress(ctx, id)

	case "remaining":
		result, err = a.svc.TimeRemaining(ctx, id)

	case "target":
		var target campaign.FundraisingTarget
		target, err = a.svc.Target(ctx, id)
		if err == nil {
			result = map[string]interface{}{
				"target":            target.Money(),
				"is_achievable":     target.IsAchievable(),
				"is_mega_campaign":  target.IsMegaCampaign(),
				"requires_approval": target.RequiresApproval(),
				"milestones":        target.Milestones(),
			}
		}

	case "stats":
		result, err = a.svc.UserStats(ctx, id)

	case "transition", "apply":
		if len(args) < 3 {
			return fmt.Errorf("missing target status\n%s", usage)
		}
		status, perr := campaign.ParseStatus(args[2])
		if perr != nil {
			return perr
		}
		if args[0] == "apply" {
			err = a.svc.ApplyTransition(ctx, id, status)
		} else {
			err = a.svc.ValidateTransition(ctx, id, status)
		}
		if err == nil {
			result = map[string]interface{}{"campaign_id": id, "status": status, "allowed": true, "applied": args[0] == "apply"}
		}

	case "milestones":
		if len(args) < 3 {
			return fmt.Errorf("missing previous amount\n%s", usage)
		}
		previous, perr := campaign.ParseAmount(args[2])
		if perr != nil {
			return perr
		}
		var rec *campaign.CampaignRecord
		rec, err = a.svc.Record(ctx, id)
		if err == nil {
			var crossed []campaign.Milestone
			crossed, err = a.notifier.Check(ctx, *rec, previous, rec.CurrentAmount)
			result = map[string]interface{}{"campaign_id": id, "crossed": crossed}
		}

	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// watch blocks until ctx is cancelled.
func watch(ctx context.Context, a *app, args []string) error {
	interval := time.Minute
	if len(args) > 0 {
		d, err := time.ParseDuration(args[0])
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid interval %q", args[0])
		}
		interval = d
	}

	w := scheduler.NewMilestoneWatcher(a.source, a.notifier, interval, a.logger)
	if _, err := w.Poll(ctx); err != nil {
		return err
	}
	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}
