// Package notification reports campaigns crossing funding milestones.
package notification

import (
	"context"
	"fmt"
	"time"

	"fundraise/internal/campaign"
	"fundraise/pkg/domain"
	"fundraise/pkg/errors"
	"fundraise/pkg/logger"
	"fundraise/pkg/mailer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChannelType represents the delivery method (Email, Push).
type ChannelType string

const (
	ChannelEmail ChannelType = "EMAIL"
	ChannelPush  ChannelType = "PUSH"
)

// Priority represents the urgency of the notification.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityNormal Priority = 1
	PriorityHigh   Priority = 2
)

const TypeMilestoneReached = "CAMPAIGN_MILESTONE_REACHED"

// Notification represents a message to be sent.
type Notification struct {
	ID         uuid.UUID
	UserID     int64
	CampaignID int64
	Type       string
	Channel    ChannelType
	Priority   Priority
	Subject    string
	Body       string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}

// Sender delivers a single notification.
type Sender interface {
	SendRaw(ctx context.Context, n *Notification) error
}

// LogSender writes notifications to the logger instead of a provider.
type LogSender struct {
	logger logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

func (s *LogSender) SendRaw(ctx context.Context, n *Notification) error {
	s.logger.Info("Notification Sent", map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"campaign_id":     n.CampaignID,
		"channel":         n.Channel,
		"type":            n.Type,
		"subject":         n.Subject,
		"priority":        n.Priority,
	})
	return nil
}

type MilestoneNotifier struct {
	sender Sender
	logger logger.Logger
	clock  domain.Clock
}

func NewMilestoneNotifier(sender Sender, log logger.Logger, clock domain.Clock) *MilestoneNotifier {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &MilestoneNotifier{sender: sender, logger: log, clock: clock}
}

// Check returns the milestones crossed when the raised amount moved from
// previousRaised to currentRaised and notifies the owner once per milestone.
// Every milestone is attempted; the first delivery error is returned.
func (n *MilestoneNotifier) Check(ctx context.Context, rec campaign.CampaignRecord, previousRaised, currentRaised decimal.Decimal) ([]campaign.Milestone, error) {
	target, err := campaign.FundraisingTargetFromAmount(rec.GoalAmount, rec.Currency)
	if err != nil {
		return nil, err
	}
	before, err := domain.NewMoney(previousRaised, rec.Currency)
	if err != nil {
		return nil, err
	}
	after, err := domain.NewMoney(currentRaised, rec.Currency)
	if err != nil {
		return nil, err
	}

	var crossed []campaign.Milestone
	for _, m := range target.Milestones() {
		wasReached, _ := target.HasMilestoneBeenReached(before, m.Percentage)
		isReached, _ := target.HasMilestoneBeenReached(after, m.Percentage)
		if isReached && !wasReached {
			crossed = append(crossed, m)
		}
	}

	var firstErr error
	for _, m := range crossed {
		msg := n.milestoneNotification(rec, m, after)
		if err := n.sender.SendRaw(ctx, msg); err != nil {
			n.logger.Error("Failed to send milestone notification", map[string]interface{}{
				"campaign_id": rec.ID,
				"milestone":   m.Percentage,
				"error":       err.Error(),
			})
			if firstErr == nil {
				firstErr = errors.Wrap(err, "failed to send milestone notification")
			}
		}
	}
	return crossed, firstErr
}

func (n *MilestoneNotifier) milestoneNotification(rec campaign.CampaignRecord, m campaign.Milestone, raised domain.Money) *Notification {
	priority := PriorityNormal
	subject := fmt.Sprintf("Your campaign reached %d%% of its goal", m.Percentage)
	if m.Percentage == 100 {
		priority = PriorityHigh
		subject = "Your campaign reached its goal"
	}
	return &Notification{
		ID:         uuid.New(),
		UserID:     rec.UserID,
		CampaignID: rec.ID,
		Type:       TypeMilestoneReached,
		Channel:    ChannelEmail,
		Priority:   priority,
		Subject:    subject,
		Body:       fmt.Sprintf("%q has raised %s, passing the %s milestone.", rec.Title, raised.Format(), m.Amount.Format()),
		Metadata: map[string]interface{}{
			"milestone": m.Percentage,
			"amount":    m.Amount.Amount().String(),
			"currency":  rec.Currency,
		},
		CreatedAt: n.clock(),
	}
}

// Mailer is satisfied by mailer.Mailer.
type Mailer interface {
	Send(msg mailer.Message) error
}

// EmailSender delivers notifications to a fixed inbox, such as the
// fundraising team's shared address.
type EmailSender struct {
	mailer Mailer
	to     string
	logger logger.Logger
}

func NewEmailSender(m Mailer, to string, log logger.Logger) *EmailSender {
	return &EmailSender{mailer: m, to: to, logger: log}
}

func (s *EmailSender) SendRaw(ctx context.Context, n *Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.mailer.Send(mailer.Message{
		To:      s.to,
		Subject: n.Subject,
		Body:    fmt.Sprintf("%s\n\nCampaign: %d\nOwner: %d\nReference: %s\n", n.Body, n.CampaignID, n.UserID, n.ID),
	})
	if err != nil {
		return errors.Wrap(err, "failed to email notification")
	}
	s.logger.Info("Notification emailed", map[string]interface{}{
		"notification_id": n.ID,
		"campaign_id":     n.CampaignID,
		"type":            n.Type,
	})
	return nil
}
