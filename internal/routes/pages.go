package routes

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/haguru/folio/internal/functions"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/pkg/dto"
)

// Home renders the profile and the newest posts.
func (r *Route) Home(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, func(ctx context.Context) ([]byte, error) {
		page, err := pageFromQuery(req)
		if err != nil {
			return nil, err
		}
		posts, err := call[*models.PostPage](ctx, r, r.pageIdentity(req), functions.FnGetPosts, functions.GetPostsArgs{Page: page})
		if err != nil {
			return nil, err
		}
		return r.Renderer.Home(posts)
	})
}

// PostPage renders a single post. Views are counted when the page is built.
func (r *Route) PostPage(w http.ResponseWriter, req *http.Request) {
	r.servePage(w, req, func(ctx context.Context) ([]byte, error) {
		post, err := call[*models.PostWithAuthor](ctx, r, r.pageIdentity(req), functions.FnGetPostBySlug,
			functions.GetPostBySlugArgs{Slug: req.PathValue("slug")})
		if err != nil {
			return nil, err
		}
		return r.Renderer.Post(post)
	})
}

// TagPage lists the posts carrying a hashtag.
func (r *Route) TagPage(w http.ResponseWriter, req *http.Request) {
	tag := req.PathValue("tag")
	r.servePage(w, req, func(ctx context.Context) ([]byte, error) {
		page, err := pageFromQuery(req)
		if err != nil {
			return nil, err
		}
		posts, err := call[*models.PostPage](ctx, r, r.pageIdentity(req), functions.FnGetPostsByTag,
			functions.GetPostsByTagArgs{Tag: tag, Page: page})
		if err != nil {
			return nil, err
		}
		return r.Renderer.Tag(tag, posts)
	})
}

// NotFound answers every unmatched path: JSON under /api/, a page elsewhere.
func (r *Route) NotFound(w http.ResponseWriter, req *http.Request) {
	if strings.HasPrefix(req.URL.Path, APIPrefix) {
		r.writeJSON(w, http.StatusNotFound, dto.ErrorResponseDTO{
			Error:   "no route for " + req.Method + " " + req.URL.Path,
			Message: http.StatusText(http.StatusNotFound),
		})
		return
	}
	r.renderError(w, http.StatusNotFound)
}

// servePage answers from the page cache or builds, caches and writes the page.
// Failed pages are never cached, and a cache failure only costs a rebuild.
func (r *Route) servePage(w http.ResponseWriter, req *http.Request, build func(context.Context) ([]byte, error)) {
	ctx := req.Context()
	key := pageKey(req)

	if body, found, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("Page cache read failed", "key", key, "error", err)
	} else if found {
		writePage(w, http.StatusOK, body, "HIT")
		return
	}

	body, err := build(ctx)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			r.Logger.Error("Failed to build page", "path", req.URL.Path, "error", err)
		}
		r.renderError(w, status)
		return
	}

	if err := r.Cache.Set(ctx, key, body, r.CacheTTL); err != nil {
		r.Logger.Warn("Page cache write failed", "key", key, "error", err)
	}
	writePage(w, http.StatusOK, body, "MISS")
}

func (r *Route) renderError(w http.ResponseWriter, status int) {
	message := http.StatusText(status)
	switch status {
	case http.StatusNotFound:
		message = ErrPageNotFound
	case http.StatusInternalServerError:
		message = ErrPageFailed
	}

	body, err := r.Renderer.Error(status, message)
	if err != nil {
		r.Logger.Error("Failed to render error page", "error", err)
		http.Error(w, message, status)
		return
	}
	writePage(w, status, body, "")
}

// pageKey keeps only the query parameters a page depends on.
func pageKey(req *http.Request) string {
	kept := url.Values{}
	for _, name := range []string{QueryAfter, QuerySize} {
		if v := req.URL.Query().Get(name); v != "" {
			kept.Set(name, v)
		}
	}
	if len(kept) == 0 {
		return req.URL.Path
	}
	return req.URL.Path + "?" + kept.Encode()
}

func writePage(w http.ResponseWriter, status int, body []byte, cacheState string) {
	w.Header().Set(ContentType, ContentTypeHtml)
	if cacheState != "" {
		w.Header().Set(PageCacheHeader, cacheState)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
