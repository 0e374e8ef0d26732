// Package config loads and validates service configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"fundraise/pkg/domain"
)

// ValidateCore ensures critical configuration is present and sane.
func (c *Config) ValidateCore() error {
	var problems []string

	if strings.TrimSpace(c.Database.URL) == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if !domain.Currency(c.Campaign.DefaultCurrency).IsValid() {
		problems = append(problems, fmt.Sprintf("CAMPAIGN_DEFAULT_CURRENCY %q is not a currency code", c.Campaign.DefaultCurrency))
	}
	if c.Campaign.ExpiringSoonDays < 0 {
		problems = append(problems, "CAMPAIGN_EXPIRING_SOON_DAYS cannot be negative")
	}
	if c.Campaign.MomentumWindow < 24*time.Hour {
		problems = append(problems, "CAMPAIGN_MOMENTUM_WINDOW must be at least 24h")
	}
	if c.Mail.Host != "" && strings.TrimSpace(c.Mail.NotifyTo) == "" {
		problems = append(problems, "MILESTONE_NOTIFY_EMAIL is required when SMTP_HOST is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}

	return nil
}
