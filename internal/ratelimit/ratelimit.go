package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
)

// ErrRateLimited is returned when an identity used up the calls of an action.
var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter applies the configured per action rules. Actions without a rule
// are never limited.
type Limiter struct {
	repo    interfaces.RateLimitRepository
	rules   map[string]config.RateRule
	logger  interfaces.Logger
	metrics interfaces.Metrics
	now     func() time.Time
}

// NewLimiter creates a limiter over repo. metrics may be nil.
func NewLimiter(repo interfaces.RateLimitRepository, rules map[string]config.RateRule, logger interfaces.Logger, m interfaces.Metrics) (*Limiter, error) {
	if repo == nil {
		return nil, fmt.Errorf("rate limit repository cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	for action, rule := range rules {
		if rule.Calls < 1 {
			return nil, fmt.Errorf("invalid rate limit for %s: calls must be at least 1", action)
		}
		if rule.Per < 0 {
			return nil, fmt.Errorf("invalid rate limit for %s: period cannot be negative", action)
		}
	}

	return &Limiter{
		repo:    repo,
		rules:   rules,
		logger:  logger,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Rule returns the rule of action, if any.
func (l *Limiter) Rule(action string) (config.RateRule, bool) {
	rule, ok := l.rules[action]
	return rule, ok
}

// Allow records a call of identity to action. It returns an error wrapping
// ErrRateLimited once the rule of action is exhausted.
func (l *Limiter) Allow(ctx context.Context, action, identity string) error {
	rule, ok := l.rules[action]
	if !ok {
		return nil
	}

	allowed, err := l.repo.Record(ctx, action, identity, rule.Calls, rule.Per, l.now())
	if err != nil {
		return fmt.Errorf("failed to apply rate limit for %s: %w", action, err)
	}
	if !allowed {
		l.logger.Warn("Rate limited", "action", action, "identity", identity)
		if l.metrics != nil {
			l.metrics.IncCounterVec(metrics.RateLimitedTotal, action)
		}
		return fmt.Errorf("%s: %w", action, ErrRateLimited)
	}
	return nil
}

// Reset forgets the calls identity made to action.
func (l *Limiter) Reset(ctx context.Context, action, identity string) error {
	if _, ok := l.rules[action]; !ok {
		return nil
	}
	return l.repo.Reset(ctx, action, identity)
}
