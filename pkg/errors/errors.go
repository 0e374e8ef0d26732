// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Money errors
var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// Campaign errors
var (
	ErrTargetBelowMinimum = errors.New("fundraising target below minimum")
	ErrTargetAboveMaximum = errors.New("fundraising target above maximum")
	ErrInvalidTarget      = errors.New("invalid target amount")
	ErrInvalidMilestone   = errors.New("invalid milestone percentage")
	ErrInvalidCampaignID  = errors.New("invalid campaign id")
	ErrInvalidDayCount    = errors.New("invalid day count")
	ErrUnknownStatus      = errors.New("unknown campaign status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidRecord      = errors.New("invalid campaign record")
	ErrCampaignNotFound   = errors.New("campaign not found")
)

// Infrastructure errors
var (
	ErrCacheMiss = errors.New("cache miss")
)

// domainError carries a human-readable message while still matching its kind
// through errors.Is.
type domainError struct {
	kind    error
	message string
}

func (e *domainError) Error() string { return e.message }

func (e *domainError) Unwrap() error { return e.kind }

// New builds an error with a formatted message that unwraps to kind.
func New(kind error, format string, args ...interface{}) error {
	return &domainError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
