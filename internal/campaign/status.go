package campaign

import (
	"fmt"
	"strings"

	"fundraise/pkg/errors"
)

// Status is the campaign lifecycle state.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingApproval Status = "pending_approval"
	StatusRejected        Status = "rejected"
	StatusActive          Status = "active"
	StatusPaused          Status = "paused"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusExpired         Status = "expired"
)

var allStatuses = []Status{
	StatusDraft,
	StatusPendingApproval,
	StatusRejected,
	StatusActive,
	StatusPaused,
	StatusCompleted,
	StatusCancelled,
	StatusExpired,
}

type statusInfo struct {
	label       string
	color       string
	description string
}

var statusTable = map[Status]statusInfo{
	StatusDraft:           {"Draft", "secondary", "Campaign is being prepared and is not visible to donors."},
	StatusPendingApproval: {"Pending Approval", "info", "Campaign has been submitted and is waiting for review."},
	StatusRejected:        {"Rejected", "danger", "Campaign was rejected during review and needs changes."},
	StatusActive:          {"Active", "success", "Campaign is live and accepting donations."},
	StatusPaused:          {"Paused", "warning", "Campaign is temporarily paused and not accepting donations."},
	StatusCompleted:       {"Completed", "primary", "Campaign has ended successfully."},
	StatusCancelled:       {"Cancelled", "danger", "Campaign was cancelled before completion."},
	StatusExpired:         {"Expired", "secondary", "Campaign reached its end date."},
}

// AllStatuses lists every lifecycle state in declaration order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus accepts any casing and surrounding whitespace.
func ParseStatus(value string) (Status, error) {
	s, ok := TryParseStatus(value)
	if !ok {
		return "", errors.New(errors.ErrUnknownStatus, "unknown campaign status %q", value)
	}
	return s, nil
}

// TryParseStatus is ParseStatus without the error.
func TryParseStatus(value string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

func (s Status) IsValid() bool {
	_, ok := statusTable[s]
	return ok
}

func (s Status) String() string { return string(s) }

func (s Status) Label() string { return statusTable[s].label }

func (s Status) Color() string { return statusTable[s].color }

func (s Status) Description() string { return statusTable[s].description }

// AllowedTransitions returns the states reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	switch s {
	case StatusDraft:
		return []Status{StatusPendingApproval, StatusCancelled}
	case StatusPendingApproval:
		return []Status{StatusActive, StatusRejected}
	case StatusRejected:
		return []Status{StatusDraft, StatusPendingApproval, StatusCancelled}
	case StatusActive:
		return []Status{StatusPaused, StatusCompleted, StatusCancelled, StatusExpired}
	case StatusPaused:
		return []Status{StatusActive, StatusCancelled, StatusExpired}
	case StatusCompleted, StatusCancelled, StatusExpired:
		return nil
	}
	return nil
}

func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return false
	}
	for _, allowed := range s.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionMessage explains why s cannot move to target. It is empty when
// the transition is allowed.
func (s Status) TransitionMessage(target Status) string {
	if s.CanTransitionTo(target) {
		return ""
	}
	return fmt.Sprintf("Cannot transition from %s to %s status", s.labelOrValue(), target.labelOrValue())
}

// ValidateTransition returns an ErrInvalidTransition error for disallowed moves.
func (s Status) ValidateTransition(target Status) error {
	if msg := s.TransitionMessage(target); msg != "" {
		return errors.New(errors.ErrInvalidTransition, "%s", msg)
	}
	return nil
}

func (s Status) IsActive() bool { return s == StatusActive }

func (s Status) CanAcceptDonations() bool { return s == StatusActive }

func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

func (s Status) RequiresApproval() bool { return s == StatusPendingApproval }

func (s Status) IsRejected() bool { return s == StatusRejected }

func (s Status) labelOrValue() string {
	if label := s.Label(); label != "" {
		return label
	}
	return string(s)
}
