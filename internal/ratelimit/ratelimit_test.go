package ratelimit

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/interfaces/mocks"
	"github.com/haguru/folio/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, repo *mocks.MockRateLimitRepository, now time.Time) *Limiter {
	limiter, err := NewLimiter(repo, config.DefaultRateRules(), zerolog.NewZerologLoggerWithWriter("test", io.Discard), nil)
	require.NoError(t, err)
	limiter.now = func() time.Time { return now }
	return limiter
}

func TestNewLimiter(t *testing.T) {
	logger := zerolog.NewZerologLoggerWithWriter("test", io.Discard)
	repo := mocks.NewMockRateLimitRepository(t)

	tests := []struct {
		name    string
		rules   map[string]config.RateRule
		wantErr bool
	}{
		{name: "default rules", rules: config.DefaultRateRules()},
		{name: "no rules", rules: nil},
		{name: "zero calls", rules: map[string]config.RateRule{"login": {Calls: 0}}, wantErr: true},
		{name: "negative period", rules: map[string]config.RateRule{"login": {Calls: 1, Per: -time.Second}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLimiter(repo, tt.rules, logger, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	_, err := NewLimiter(nil, nil, logger, nil)
	assert.Error(t, err)
	_, err = NewLimiter(repo, nil, nil, nil)
	assert.Error(t, err)
}

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2020, 8, 14, 12, 0, 0, 0, time.UTC)
	dbErr := errors.New("connection reset")

	tests := []struct {
		name      string
		action    string
		allowed   bool
		recordErr error
		expectDB  bool
		wantErr   error
	}{
		{name: "allowed", action: "create_post", allowed: true, expectDB: true},
		{name: "limited", action: "create_post", allowed: false, expectDB: true, wantErr: ErrRateLimited},
		{name: "database failure", action: "get_posts", recordErr: dbErr, expectDB: true, wantErr: dbErr},
		{name: "action without rule", action: "logout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockRateLimitRepository(t)
			if tt.expectDB {
				rule := config.DefaultRateRules()[tt.action]
				repo.On("Record", mock.Anything, tt.action, "acc", rule.Calls, rule.Per, now).
					Return(tt.allowed, tt.recordErr).Once()
			}

			err := newTestLimiter(t, repo, now).Allow(context.Background(), tt.action, "acc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLimiter_Reset(t *testing.T) {
	repo := mocks.NewMockRateLimitRepository(t)
	repo.On("Reset", mock.Anything, "login", "a@b.co").Return(nil).Once()

	limiter := newTestLimiter(t, repo, time.Now())
	assert.NoError(t, limiter.Reset(context.Background(), "login", "a@b.co"))
	// no rule, nothing recorded
	assert.NoError(t, limiter.Reset(context.Background(), "logout", "a@b.co"))

	rule, ok := limiter.Rule("login")
	assert.True(t, ok)
	assert.Equal(t, 5, rule.Calls)
	assert.Zero(t, rule.Per)
}
