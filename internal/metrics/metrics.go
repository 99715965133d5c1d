package metrics

import "github.com/haguru/folio/internal/interfaces"

var (
	RequestDurationSecondsBuckets  = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	FunctionDurationSecondsBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

const (
	HttpRequestsTotal        = "http_requests_total"
	HttpRequestsTotalHelp    = "Total number of HTTP requests by route and status code"
	HttpRequestDuration      = "http_request_duration_seconds"
	HttpRequestDurationHelp  = "Duration of HTTP requests in seconds"
	FunctionCallsTotal       = "function_calls_total"
	FunctionCallsTotalHelp   = "Total number of stored function calls by function and role"
	FunctionErrorsTotal      = "function_errors_total"
	FunctionErrorsTotalHelp  = "Total number of failed stored function calls by function and reason"
	FunctionDuration         = "function_duration_seconds"
	FunctionDurationHelp     = "Duration of stored function calls in seconds"
	RateLimitedTotal         = "rate_limited_total"
	RateLimitedTotalHelp     = "Total number of calls rejected by the rate limiter by action"
	LoginSuccessTotal        = "login_success_total"
	LoginSuccessTotalHelp    = "Total number of successful logins"
	LoginFailedTotal         = "login_failed_total"
	LoginFailedTotalHelp     = "Total number of failed logins"
	RegistrationsTotal       = "registrations_total"
	RegistrationsTotalHelp   = "Total number of registered accounts"
	SessionsRevokedTotal     = "sessions_revoked_total"
	SessionsRevokedTotalHelp = "Total number of revoked session secrets"
	PostsCreatedTotal        = "posts_created_total"
	PostsCreatedTotalHelp    = "Total number of created posts"
	PostViewsTotal           = "post_views_total"
	PostViewsTotalHelp       = "Total number of post reads by slug"
	CacheHitsTotal           = "cache_hits_total"
	CacheHitsTotalHelp       = "Total number of page cache hits"
	CacheMissesTotal         = "cache_misses_total"
	CacheMissesTotalHelp     = "Total number of page cache misses"
	CacheErrorsTotal         = "cache_errors_total"
	CacheErrorsTotalHelp     = "Total number of page cache errors"
	ServiceStartTime         = "start_time_seconds"
	ServiceStartTimeHelp     = "Unix time the service started at"
	LabelRoute               = "route"
	LabelCode                = "code"
	LabelFunction            = "function"
	LabelRole                = "role"
	LabelReason              = "reason"
	LabelAction              = "action"
)

// Register adds every metric the service reports to m.
func Register(m interfaces.Metrics) {
	m.RegisterCounterVec(HttpRequestsTotal, HttpRequestsTotalHelp, []string{LabelRoute, LabelCode})
	m.RegisterHistogramVec(HttpRequestDuration, HttpRequestDurationHelp, RequestDurationSecondsBuckets, []string{LabelRoute})
	m.RegisterCounterVec(FunctionCallsTotal, FunctionCallsTotalHelp, []string{LabelFunction, LabelRole})
	m.RegisterCounterVec(FunctionErrorsTotal, FunctionErrorsTotalHelp, []string{LabelFunction, LabelReason})
	m.RegisterHistogramVec(FunctionDuration, FunctionDurationHelp, FunctionDurationSecondsBuckets, []string{LabelFunction})
	m.RegisterCounterVec(RateLimitedTotal, RateLimitedTotalHelp, []string{LabelAction})
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounter(LoginFailedTotal, LoginFailedTotalHelp)
	m.RegisterCounter(RegistrationsTotal, RegistrationsTotalHelp)
	m.RegisterCounter(SessionsRevokedTotal, SessionsRevokedTotalHelp)
	m.RegisterCounter(PostsCreatedTotal, PostsCreatedTotalHelp)
	m.RegisterCounter(PostViewsTotal, PostViewsTotalHelp)
	m.RegisterCounter(CacheHitsTotal, CacheHitsTotalHelp)
	m.RegisterCounter(CacheMissesTotal, CacheMissesTotalHelp)
	m.RegisterCounter(CacheErrorsTotal, CacheErrorsTotalHelp)
	m.RegisterGauge(ServiceStartTime, ServiceStartTimeHelp)
}
