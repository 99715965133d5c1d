package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/haguru/folio/internal/accountservice"
	"github.com/haguru/folio/internal/functions"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/postservice"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/ratelimit"
	"github.com/haguru/folio/internal/render"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/internal/session"
	"github.com/haguru/folio/pkg/dto"
	"github.com/haguru/folio/pkg/helper"

	structValidator "github.com/go-playground/validator/v10"
)

// Route serves the blog pages and the JSON API. Every operation goes
// through the function registry as the identity the request resolves to.
type Route struct {
	Functions *functions.Registry
	Resolver  interfaces.SessionResolver
	Cache     interfaces.PageCache
	Renderer  *render.Renderer
	DB        interfaces.DBClient
	Logger    interfaces.Logger
	CacheTTL  time.Duration
	// Proxies decides whose X-Forwarded-For header names the client.
	Proxies   helper.TrustedProxies
	validator *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(registry *functions.Registry, resolver interfaces.SessionResolver, cache interfaces.PageCache,
	renderer *render.Renderer, db interfaces.DBClient, validator *structValidator.Validate,
	logger interfaces.Logger, cacheTTL time.Duration,
) *Route {
	return &Route{
		Functions: registry,
		Resolver:  resolver,
		Cache:     cache,
		Renderer:  renderer,
		DB:        db,
		Logger:    logger,
		CacheTTL:  cacheTTL,
		validator: validator,
	}
}

// AddRoutes adds every page and API route to s.
func (r *Route) AddRoutes(s interfaces.Server) error {
	handlers := []struct {
		route   string
		handler func(http.ResponseWriter, *http.Request)
	}{
		{HomeRoute, r.Home},
		{PostPageRoute, r.PostPage},
		{TagPageRoute, r.TagPage},
		{FallbackRoute, r.NotFound},
		{RegisterRouteAPI, r.Register},
		{LoginRouteAPI, r.Login},
		{LogoutRouteAPI, r.Logout},
		{PostsRouteAPI, r.GetPosts},
		{CreatePostRouteAPI, r.CreatePost},
		{PostRouteAPI, r.GetPostBySlug},
		{TagPostsRouteAPI, r.GetPostsByTag},
		{AuthorPostsRouteAPI, r.GetPostsByAuthor},
		{SlugsRouteAPI, r.ListSlugs},
		{HealthRouteAPI, r.Health},
	}

	for _, h := range handlers {
		if err := s.AddRoute(h.route, h.handler); err != nil {
			return fmt.Errorf("failed to add route %s: %w", h.route, err)
		}
	}
	return nil
}

// call runs a stored function and asserts its result type.
func call[T any](ctx context.Context, r *Route, caller models.Identity, name string, args any) (T, error) {
	var zero T
	result, err := r.Functions.Call(ctx, caller, name, args)
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s: %s returned %T", ErrUnexpectedResult, name, result)
	}
	return typed, nil
}

// pageIdentity is the caller used for rendered pages. Pages are cached and
// shared, so they are always built with the bootstrap role.
func (r *Route) pageIdentity(req *http.Request) models.Identity {
	return models.Identity{Role: models.RoleBootstrap, RemoteAddr: r.Proxies.RemoteIP(req)}
}

// apiIdentity resolves the request's secret. A missing secret is unauthorized.
func (r *Route) apiIdentity(req *http.Request) (models.Identity, error) {
	identity, err := r.Resolver.Resolve(req.Context(), session.SecretFromRequest(req))
	if err != nil {
		return models.Identity{}, err
	}
	identity.RemoteAddr = r.Proxies.RemoteIP(req)
	return identity, nil
}

func pageFromQuery(req *http.Request) (queries.Page, error) {
	page := queries.Page{After: req.URL.Query().Get(QueryAfter)}
	if raw := req.URL.Query().Get(QuerySize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return page, errBadRequest(ErrInvalidPageSize)
		}
		page.Size = size
	}
	return page, nil
}

// decodeBody reads a JSON body into dst and validates it.
func (r *Route) decodeBody(req *http.Request, w http.ResponseWriter, dst any, optional bool) error {
	if optional && req.ContentLength == 0 {
		return nil
	}

	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil || mediaType != ContentTypeJson {
		return errBadRequest(ErrInvalidContentType)
	}

	req.Body = http.MaxBytesReader(w, req.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: %w", ErrInvalidRequestBody, errBadRequest(err.Error()))
	}

	if err := r.validator.Struct(dst); err != nil {
		var invalid structValidator.ValidationErrors
		if errors.As(err, &invalid) {
			return fmt.Errorf("%s: %w", ErrValidationFailed, errBadRequest(invalid.Error()))
		}
		return errBadRequest(err.Error())
	}
	return nil
}

// badRequest marks errors caused by the request itself.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func errBadRequest(msg string) error { return badRequest{msg: msg} }

// statusOf maps an error onto its HTTP status code.
func statusOf(err error) int {
	var bad badRequest
	switch {
	case errors.As(err, &bad),
		errors.Is(err, postservice.ErrInvalidPost),
		errors.Is(err, accountservice.ErrInvalidInput),
		errors.Is(err, functions.ErrInvalidArguments),
		errors.Is(err, queries.ErrInvalidCursor):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnauthorized),
		errors.Is(err, accountservice.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, functions.ErrPermissionDenied),
		errors.Is(err, postservice.ErrAuthorRequired):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, functions.ErrUnknownFunction):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ratelimit.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

// errorResponse writes err as JSON. Internal errors are logged and not
// exposed to the caller.
func (r *Route) errorResponse(w http.ResponseWriter, req *http.Request, err error) {
	status := statusOf(err)
	resp := dto.ErrorResponseDTO{Error: err.Error(), Message: http.StatusText(status)}
	if status == http.StatusInternalServerError {
		r.Logger.Error("Request failed", "path", req.URL.Path, "error", err)
		resp.Error = http.StatusText(status)
	}
	r.writeJSON(w, status, resp)
}

func sessionCookie(req *http.Request, secret string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    secret,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   req.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
