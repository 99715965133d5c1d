package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haguru/folio/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer("127.0.0.1", "0", zerolog.NewZerologLoggerWithWriter("test", io.Discard))
}

func TestServer_AddRoute(t *testing.T) {
	s := newTestServer()

	require.NoError(t, s.AddRoute("GET /posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.PathValue("slug")))
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/hello", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_AddRouteConflict(t *testing.T) {
	s := newTestServer()
	handler := func(w http.ResponseWriter, r *http.Request) {}

	require.NoError(t, s.AddRoute("GET /a", handler))
	assert.Error(t, s.AddRoute("GET /a", handler))
	assert.Error(t, s.AddRoute("GET /{bad", handler))
}

func TestServer_Use(t *testing.T) {
	s := newTestServer()
	require.NoError(t, s.AddRoute("GET /", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("handler"))
	}))

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	s.Use(tag("inner"))
	s.Use(tag("outer"))

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestServer_Shutdown(t *testing.T) {
	s := newTestServer()

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	// give the listener a moment to start
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
