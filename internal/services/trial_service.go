package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/hmsauth/domain"
)

// Storage key names for the trial flags, matching the original browser
// keys.
const (
	flagTrialNoticeSeen   = "trial-notice-seen"
	flagTrialWarningShown = "trial-warning-shown"
)

// TrialConfig sets the trial deadline and the window before it during
// which the warning state applies.
type TrialConfig struct {
	Deadline      time.Time
	WarningWindow time.Duration
}

// TrialServiceImpl implements domain.TrialService. Flags are per client
// scope; the deadline is shared.
type TrialServiceImpl struct {
	flags domain.FlagStore
	cfg   TrialConfig
	now   func() time.Time
}

// NewTrialService creates a new trial service.
func NewTrialService(flags domain.FlagStore, cfg TrialConfig) domain.TrialService {
	return &TrialServiceImpl{flags: flags, cfg: cfg, now: time.Now}
}

// Status implements domain.TrialService.
func (s *TrialServiceImpl) Status(ctx context.Context, scope string) (*domain.TrialStatus, error) {
	noticeSeen, err := s.flags.IsSet(ctx, scope, flagTrialNoticeSeen)
	if err != nil {
		return nil, fmt.Errorf("failed to read trial flag: %w", err)
	}
	warningShown, err := s.flags.IsSet(ctx, scope, flagTrialWarningShown)
	if err != nil {
		return nil, fmt.Errorf("failed to read trial flag: %w", err)
	}

	now := s.now()
	left := s.cfg.Deadline.Sub(now)

	state := domain.TrialActive
	switch {
	case left <= 0:
		state = domain.TrialEnded
		left = 0
	case left <= s.cfg.WarningWindow:
		state = domain.TrialWarning
	}

	return &domain.TrialStatus{
		State:        state,
		Deadline:     s.cfg.Deadline,
		TimeLeft:     left,
		NoticeSeen:   noticeSeen,
		WarningShown: warningShown,
	}, nil
}

// Acknowledge implements domain.TrialService.
func (s *TrialServiceImpl) Acknowledge(ctx context.Context, scope string, notice domain.TrialNotice) error {
	switch notice {
	case domain.TrialNoticeSeen:
		return s.flags.Set(ctx, scope, flagTrialNoticeSeen)
	case domain.TrialWarningShown:
		return s.flags.Set(ctx, scope, flagTrialWarningShown)
	default:
		return fmt.Errorf("unknown trial notice %q", notice)
	}
}
