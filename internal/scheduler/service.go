// Package scheduler polls active campaigns and reports newly crossed milestones.
package scheduler

import (
	"context"
	"sync"
	"time"

	"fundraise/internal/campaign"
	"fundraise/pkg/logger"

	"github.com/shopspring/decimal"
)

// CampaignSource lists the campaigns worth watching.
type CampaignSource interface {
	FindActive(ctx context.Context) ([]*campaign.CampaignRecord, error)
}

// MilestoneChecker is satisfied by notification.MilestoneNotifier.
type MilestoneChecker interface {
	Check(ctx context.Context, rec campaign.CampaignRecord, previousRaised, currentRaised decimal.Decimal) ([]campaign.Milestone, error)
}

// MilestoneWatcher remembers the last raised amount seen per campaign. A
// campaign seen for the first time only sets the baseline.
type MilestoneWatcher struct {
	source   CampaignSource
	checker  MilestoneChecker
	interval time.Duration
	lastSeen map[int64]decimal.Decimal
	mu       sync.Mutex
	logger   logger.Logger
	stop     chan struct{}
	done     chan struct{}
	running  bool
	stopped  bool
	runMu    sync.Mutex
	stopOnce sync.Once
}

func NewMilestoneWatcher(source CampaignSource, checker MilestoneChecker, interval time.Duration, log logger.Logger) *MilestoneWatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &MilestoneWatcher{
		source:   source,
		checker:  checker,
		interval: interval,
		lastSeen: make(map[int64]decimal.Decimal),
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start polls until ctx is cancelled or Stop is called. Only the first call
// starts the loop, and a stopped watcher stays stopped.
func (w *MilestoneWatcher) Start(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.running || w.stopped {
		return
	}
	w.running = true

	ticker := time.NewTicker(w.interval)
	go func() {
		defer close(w.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := w.Poll(ctx); err != nil {
					w.logger.Error("Milestone poll failed", map[string]interface{}{"error": err.Error()})
				}
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			}
		}
	}()
	w.logger.Info("Milestone watcher started", map[string]interface{}{"interval": w.interval.String()})
}

// Stop ends the polling loop and waits for it to exit. It is safe to call
// more than once, and before Start.
func (w *MilestoneWatcher) Stop() {
	w.runMu.Lock()
	running := w.running
	w.stopped = true
	w.runMu.Unlock()

	w.stopOnce.Do(func() { close(w.stop) })
	if running {
		<-w.done
	}
}

// Poll runs one pass and returns the number of milestones crossed.
func (w *MilestoneWatcher) Poll(ctx context.Context) (int, error) {
	records, err := w.source.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	crossed := 0
	for _, rec := range records {
		previous, seen := w.lastSeen[rec.ID]
		if !seen {
			w.lastSeen[rec.ID] = rec.CurrentAmount
			continue
		}
		if !rec.CurrentAmount.GreaterThan(previous) {
			w.lastSeen[rec.ID] = rec.CurrentAmount
			continue
		}

		milestones, err := w.checker.Check(ctx, *rec, previous, rec.CurrentAmount)
		if err != nil {
			w.logger.Warn("Milestone check failed", map[string]interface{}{
				"campaign_id": rec.ID,
				"error":       err.Error(),
			})
		}
		crossed += len(milestones)
		w.lastSeen[rec.ID] = rec.CurrentAmount
	}
	return crossed, nil
}
