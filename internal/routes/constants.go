package routes

const (
	// page routes
	HomeRoute     = "GET /{$}"
	PostPageRoute = "GET /posts/{slug}"
	TagPageRoute  = "GET /tags/{tag}"
	FallbackRoute = "/"

	// API routes
	RegisterRouteAPI    = "POST /api/register"
	LoginRouteAPI       = "POST /api/login"
	LogoutRouteAPI      = "POST /api/logout"
	PostsRouteAPI       = "GET /api/posts"
	CreatePostRouteAPI  = "POST /api/posts"
	PostRouteAPI        = "GET /api/posts/{slug}"
	TagPostsRouteAPI    = "GET /api/tags/{tag}/posts"
	AuthorPostsRouteAPI = "GET /api/users/{id}/posts"
	SlugsRouteAPI       = "GET /api/slugs"
	HealthRouteAPI      = "GET /healthz"
	MetricsRouteAPI     = "/metrics"
	APIPrefix           = "/api/"
	PageCacheHeader     = "X-Cache"
	QueryAfter          = "after"
	QuerySize           = "size"
	MaxRequestBodyBytes = 1 << 20

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"
	ContentTypeHtml = "text/html; charset=utf-8"

	// message constants
	MsgLoginSuccessful  = "Login successful"
	MsgLogoutSuccessful = "Logout successful"
	MsgAccountCreated   = "Account created successfully"
	MsgHealthy          = "ok"

	// Error messages
	ErrInvalidContentType     = "Content-Type must be application/json"
	ErrInvalidRequestBody     = "invalid request body"
	ErrValidationFailed       = "data validation failed"
	ErrInvalidPageSize        = "size must be a positive number"
	ErrFailedToEncodeResponse = "failed to encode response"
	ErrUnexpectedResult       = "unexpected function result"
	ErrPageNotFound           = "This page could not be found."
	ErrPageFailed             = "Something went wrong. Please try again later."
	ErrDatabaseUnavailable    = "database unavailable"
)
