package functions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/ratelimit"
	"github.com/haguru/folio/pkg/helper"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownFunction  = errors.New("unknown function")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Func is a stored function. args holds the typed arguments of the
// function, e.g. LoginArgs for login.
type Func func(ctx context.Context, caller models.Identity, args any) (any, error)

// Option tunes how a function is called.
type Option func(*entry)

// RateLimitAs applies the rule of action instead of the function's own.
func RateLimitAs(action string) Option {
	return func(e *entry) { e.action = action }
}

// SelfLimited skips the registry rate limit for functions that apply one
// with their own identity, such as login keyed on the email.
func SelfLimited() Option {
	return func(e *entry) { e.selfLimited = true }
}

type entry struct {
	fn          Func
	action      string
	selfLimited bool
}

// Registry holds the named functions and checks privileges and rate
// limits before running them.
type Registry struct {
	mu      sync.RWMutex
	funcs   map[string]entry
	roles   map[string]Role
	limiter interfaces.RateLimiter
	logger  interfaces.Logger
	metrics interfaces.Metrics
}

// NewRegistry creates a registry enforcing roles. limiter and m may be nil.
func NewRegistry(roles []Role, limiter interfaces.RateLimiter, logger interfaces.Logger, m interfaces.Metrics) (*Registry, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	byName := make(map[string]Role, len(roles))
	for _, role := range roles {
		if role.Name == "" {
			return nil, fmt.Errorf("role name cannot be empty")
		}
		if _, ok := byName[role.Name]; ok {
			return nil, fmt.Errorf("role %s defined twice", role.Name)
		}
		byName[role.Name] = role
	}

	return &Registry{
		funcs:   make(map[string]entry),
		roles:   byName,
		limiter: limiter,
		logger:  logger,
		metrics: m,
	}, nil
}

// Register adds fn under name. A name can only be registered once.
func (r *Registry) Register(name string, fn Func, opts ...Option) error {
	if name == "" || fn == nil {
		return fmt.Errorf("function name and body are required")
	}

	e := entry{fn: fn, action: name}
	for _, opt := range opts {
		opt(&e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("function %s already registered", name)
	}
	r.funcs[name] = e
	return nil
}

// Names lists the registered functions in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Can reports whether role holds the call privilege on name.
func (r *Registry) Can(role, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	granted, ok := r.roles[role]
	return ok && granted.Can(name)
}

// Call runs name as caller. The caller's role must hold the call privilege,
// then the rate limit of the function is applied unless the role is
// unlimited.
func (r *Registry) Call(ctx context.Context, caller models.Identity, name string, args any) (any, error) {
	funcName := helper.GetFuncName()

	r.mu.RLock()
	e, found := r.funcs[name]
	role, known := r.roles[caller.Role]
	r.mu.RUnlock()

	if !found {
		r.failed(name, "unknown")
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFunction)
	}
	if !known || !role.Can(name) {
		r.logger.Warn("Call denied", "func", funcName, "function", name, "role", caller.Role)
		r.failed(name, "denied")
		return nil, fmt.Errorf("role %q may not call %s: %w", caller.Role, name, ErrPermissionDenied)
	}

	if !role.Unlimited && !e.selfLimited && r.limiter != nil {
		if err := r.limiter.Allow(ctx, e.action, caller.Key()); err != nil {
			if errors.Is(err, ratelimit.ErrRateLimited) {
				r.failed(name, "rate_limited")
			} else {
				r.failed(name, "error")
			}
			return nil, err
		}
	}

	if r.metrics != nil {
		r.metrics.IncCounterVec(metrics.FunctionCallsTotal, name, caller.Role)
	}
	start := time.Now()
	result, err := e.fn(ctx, caller, args)
	if r.metrics != nil {
		r.metrics.ObserveHistogramVec(metrics.FunctionDuration, time.Since(start).Seconds(), name)
	}
	if err != nil {
		r.logger.Debug("Function failed", "func", funcName, "function", name, "error", err)
		r.failed(name, "error")
		return nil, err
	}
	return result, nil
}

func (r *Registry) failed(name, reason string) {
	if r.metrics != nil {
		r.metrics.IncCounterVec(metrics.FunctionErrorsTotal, name, reason)
	}
}
