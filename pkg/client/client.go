package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/haguru/folio/pkg/dto"
)

const (
	// ENV_BOOTSTRAP_SECRET is read when New is given no token.
	ENV_BOOTSTRAP_SECRET = "FOLIO_BOOTSTRAP_SECRET"
	DEFAULT_TIMEOUT      = 10 * time.Second
)

var ErrNoBootstrapSecret = errors.New("no bootstrap secret configured")

// APIError is a non 2xx answer of the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("folio api: %d %s: %s", e.Status, e.Message, e.Code)
}

// QueryManager calls the folio API with the current secret. It starts
// with the bootstrap secret, switches to the session secret after login
// or register and goes back to the bootstrap secret on logout.
type QueryManager struct {
	baseURL        string
	httpClient     *http.Client
	bootstrapToken string

	mu     sync.RWMutex
	secret string
}

type Option func(*QueryManager)

func WithHTTPClient(c *http.Client) Option {
	return func(q *QueryManager) { q.httpClient = c }
}

// New creates a query manager for the API at baseURL.
func New(baseURL, token string, opts ...Option) (*QueryManager, error) {
	if token == "" {
		token = os.Getenv(ENV_BOOTSTRAP_SECRET)
	}
	if token == "" {
		return nil, ErrNoBootstrapSecret
	}

	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	q := &QueryManager{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: DEFAULT_TIMEOUT},
		bootstrapToken: token,
		secret:         token,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Secret returns the secret sent with the next request.
func (q *QueryManager) Secret() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.secret
}

func (q *QueryManager) setSecret(secret string) {
	q.mu.Lock()
	q.secret = secret
	q.mu.Unlock()
}

// LoggedIn reports whether a session secret is in use.
func (q *QueryManager) LoggedIn() bool {
	return q.Secret() != q.bootstrapToken
}

func (q *QueryManager) Login(ctx context.Context, email, password string) (*dto.LoginResponseDTO, error) {
	resp := &dto.LoginResponseDTO{}
	err := q.do(ctx, http.MethodPost, "/api/login", nil, dto.LoginRequestDTO{Email: email, Password: password}, resp)
	if err != nil {
		return nil, err
	}
	q.setSecret(resp.Secret)
	return resp, nil
}

// Register creates an account, with a user profile when req.Name is set.
func (q *QueryManager) Register(ctx context.Context, req dto.RegisterRequestDTO) (*dto.RegisterResponseDTO, error) {
	resp := &dto.RegisterResponseDTO{}
	if err := q.do(ctx, http.MethodPost, "/api/register", nil, req, resp); err != nil {
		return nil, err
	}
	q.setSecret(resp.Secret)
	return resp, nil
}

// Logout revokes the session and restores the bootstrap secret, even when
// the call fails.
func (q *QueryManager) Logout(ctx context.Context, all bool) (*dto.LogoutResponseDTO, error) {
	defer q.setSecret(q.bootstrapToken)

	resp := &dto.LogoutResponseDTO{}
	if err := q.do(ctx, http.MethodPost, "/api/logout", nil, dto.LogoutRequestDTO{All: all}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (q *QueryManager) CreatePost(ctx context.Context, title, content string, hashtags []string) (*dto.PostDTO, error) {
	resp := &dto.PostDTO{}
	req := dto.CreatePostRequestDTO{Title: title, Content: content, Hashtags: hashtags}
	if err := q.do(ctx, http.MethodPost, "/api/posts", nil, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (q *QueryManager) GetPosts(ctx context.Context, after string, size int) (*dto.PostPageDTO, error) {
	return q.listPosts(ctx, "/api/posts", after, size)
}

func (q *QueryManager) GetPostsByTag(ctx context.Context, tag, after string, size int) (*dto.PostPageDTO, error) {
	return q.listPosts(ctx, "/api/tags/"+url.PathEscape(tag)+"/posts", after, size)
}

func (q *QueryManager) GetPostsByAuthor(ctx context.Context, authorID, after string, size int) (*dto.PostPageDTO, error) {
	return q.listPosts(ctx, "/api/users/"+url.PathEscape(authorID)+"/posts", after, size)
}

func (q *QueryManager) GetPostBySlug(ctx context.Context, slug string) (*dto.PostDTO, error) {
	resp := &dto.PostDTO{}
	if err := q.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(slug), nil, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListSlugs returns the slug of every post, newest first.
func (q *QueryManager) ListSlugs(ctx context.Context) ([]string, error) {
	resp := &dto.SlugsDTO{}
	if err := q.do(ctx, http.MethodGet, "/api/slugs", nil, nil, resp); err != nil {
		return nil, err
	}
	return resp.Slugs, nil
}

func (q *QueryManager) listPosts(ctx context.Context, path, after string, size int) (*dto.PostPageDTO, error) {
	query := url.Values{}
	if after != "" {
		query.Set("after", after)
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}

	resp := &dto.PostPageDTO{}
	if err := q.do(ctx, http.MethodGet, path, query, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// do sends body as JSON with the current secret and decodes a 2xx answer into out.
func (q *QueryManager) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	// path segments are escaped by the callers
	target := q.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+q.Secret())

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody dto.ErrorResponseDTO
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Code = errBody.Error
			if errBody.Message != "" {
				apiErr.Message = errBody.Message
			}
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
