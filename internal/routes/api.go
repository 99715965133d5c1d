package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/haguru/folio/internal/functions"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/pkg/dto"
)

// Register creates an account. A name in the request also creates the
// user profile the account writes posts as.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	registerRequest := &dto.RegisterRequestDTO{}
	if err := r.decodeBody(req, w, registerRequest, false); err != nil {
		r.errorResponse(w, req, err)
		return
	}

	name := functions.FnRegister
	if registerRequest.Name != "" {
		name = functions.FnRegisterWithUser
	}
	sess, err := call[*models.Session](req.Context(), r, caller, name, functions.RegisterArgs{
		Email:    registerRequest.Email,
		Password: registerRequest.Password,
		Name:     registerRequest.Name,
		Alias:    registerRequest.Alias,
	})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	http.SetCookie(w, sessionCookie(req, sess.Secret, 0))
	r.writeJSON(w, http.StatusCreated, &dto.RegisterResponseDTO{
		Message: MsgAccountCreated,
		Secret:  sess.Secret,
		Account: newAccountDTO(sess.Account),
		User:    newUserDTO(sess.User),
	})
}

// Login exchanges credentials for a session secret.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	loginRequest := &dto.LoginRequestDTO{}
	if err := r.decodeBody(req, w, loginRequest, false); err != nil {
		r.errorResponse(w, req, err)
		return
	}

	sess, err := call[*models.Session](req.Context(), r, caller, functions.FnLogin, functions.LoginArgs{
		Email:    loginRequest.Email,
		Password: loginRequest.Password,
	})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	http.SetCookie(w, sessionCookie(req, sess.Secret, 0))
	r.writeJSON(w, http.StatusOK, &dto.LoginResponseDTO{
		Message: MsgLoginSuccessful,
		Secret:  sess.Secret,
		Account: newAccountDTO(sess.Account),
		User:    newUserDTO(sess.User),
	})
}

// Logout revokes the current session, or every session of the account
// when "all" is set. The body is optional.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	logoutRequest := &dto.LogoutRequestDTO{}
	if err := r.decodeBody(req, w, logoutRequest, true); err != nil {
		r.errorResponse(w, req, err)
		return
	}

	revoked, err := call[int64](req.Context(), r, caller, functions.FnLogout, functions.LogoutArgs{All: logoutRequest.All})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	http.SetCookie(w, sessionCookie(req, "", -1))
	r.writeJSON(w, http.StatusOK, &dto.LogoutResponseDTO{Message: MsgLogoutSuccessful, Revoked: revoked})
}

// CreatePost publishes a post as the logged in caller. Roles without the
// privilege are turned away before the body is read.
func (r *Route) CreatePost(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}
	if !r.Functions.Can(caller.Role, functions.FnCreatePost) {
		r.errorResponse(w, req, fmt.Errorf("role %q may not call %s: %w", caller.Role, functions.FnCreatePost, functions.ErrPermissionDenied))
		return
	}

	createRequest := &dto.CreatePostRequestDTO{}
	if err := r.decodeBody(req, w, createRequest, false); err != nil {
		r.errorResponse(w, req, err)
		return
	}

	post, err := call[*models.PostWithAuthor](req.Context(), r, caller, functions.FnCreatePost, functions.CreatePostArgs{
		Title:    createRequest.Title,
		Content:  createRequest.Content,
		Hashtags: createRequest.Hashtags,
	})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	// listings and tag pages all change with a new post
	if err := r.Cache.Invalidate(context.WithoutCancel(req.Context()), ""); err != nil {
		r.Logger.Warn("Failed to invalidate page cache", "error", err)
	}

	r.writeJSON(w, http.StatusCreated, newPostDTO(*post))
}

func (r *Route) GetPosts(w http.ResponseWriter, req *http.Request) {
	r.listPosts(w, req, functions.FnGetPosts, func(page queries.Page) any {
		return functions.GetPostsArgs{Page: page}
	})
}

func (r *Route) GetPostsByTag(w http.ResponseWriter, req *http.Request) {
	tag := req.PathValue("tag")
	r.listPosts(w, req, functions.FnGetPostsByTag, func(page queries.Page) any {
		return functions.GetPostsByTagArgs{Tag: tag, Page: page}
	})
}

func (r *Route) GetPostsByAuthor(w http.ResponseWriter, req *http.Request) {
	authorID := req.PathValue("id")
	r.listPosts(w, req, functions.FnGetPostsByAuthor, func(page queries.Page) any {
		return functions.GetPostsByAuthorArgs{AuthorID: authorID, Page: page}
	})
}

func (r *Route) listPosts(w http.ResponseWriter, req *http.Request, name string, args func(queries.Page) any) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	page, err := pageFromQuery(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	posts, err := call[*models.PostPage](req.Context(), r, caller, name, args(page))
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}
	r.writeJSON(w, http.StatusOK, newPostPageDTO(posts))
}

func (r *Route) GetPostBySlug(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	post, err := call[*models.PostWithAuthor](req.Context(), r, caller, functions.FnGetPostBySlug,
		functions.GetPostBySlugArgs{Slug: req.PathValue("slug")})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}
	r.writeJSON(w, http.StatusOK, newPostDTO(*post))
}

// ListSlugs returns the slug of every post.
func (r *Route) ListSlugs(w http.ResponseWriter, req *http.Request) {
	caller, err := r.apiIdentity(req)
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}

	slugs, err := call[[]string](req.Context(), r, caller, functions.FnListSlugs, functions.ListSlugsArgs{})
	if err != nil {
		r.errorResponse(w, req, err)
		return
	}
	if slugs == nil {
		slugs = []string{}
	}
	r.writeJSON(w, http.StatusOK, &dto.SlugsDTO{Slugs: slugs})
}

// Health pings the database.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	if err := r.DB.Ping(req.Context()); err != nil {
		r.Logger.Error(ErrDatabaseUnavailable, "error", err)
		r.writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponseDTO{
			Error:   ErrDatabaseUnavailable,
			Message: http.StatusText(http.StatusServiceUnavailable),
		})
		return
	}
	r.writeJSON(w, http.StatusOK, map[string]string{"status": MsgHealthy})
}
