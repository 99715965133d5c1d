package functions

import (
	"context"
	"fmt"

	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
)

type LoginArgs struct {
	Email    string
	Password string
}

// RegisterArgs registers an account. Name and Alias are only used by
// register_with_user.
type RegisterArgs struct {
	Email    string
	Password string
	Name     string
	Alias    string
}

type LogoutArgs struct {
	All bool
}

type CreatePostArgs struct {
	Title    string
	Content  string
	Hashtags []string
}

type GetPostsArgs struct {
	Page queries.Page
}

type GetPostsByTagArgs struct {
	Tag  string
	Page queries.Page
}

type GetPostsByAuthorArgs struct {
	AuthorID string
	Page     queries.Page
}

type GetPostBySlugArgs struct {
	Slug string
}

type ListSlugsArgs struct{}

// RegisterBuiltins registers the account and post functions on r.
func RegisterBuiltins(r *Registry, accounts interfaces.AccountService, posts interfaces.PostService) error {
	builtins := []struct {
		name string
		fn   Func
		opts []Option
	}{
		{name: FnLogin, fn: login(accounts), opts: []Option{SelfLimited()}},
		{name: FnRegister, fn: register(accounts)},
		{name: FnRegisterWithUser, fn: registerWithUser(accounts), opts: []Option{RateLimitAs(FnRegister)}},
		{name: FnLogout, fn: logout(accounts)},
		{name: FnCreatePost, fn: createPost(posts)},
		{name: FnGetPosts, fn: getPosts(posts)},
		{name: FnGetPostsByTag, fn: getPostsByTag(posts)},
		{name: FnGetPostsByAuthor, fn: getPostsByAuthor(posts), opts: []Option{RateLimitAs(FnGetPosts)}},
		{name: FnGetPostBySlug, fn: getPostBySlug(posts)},
		{name: FnListSlugs, fn: listSlugs(posts), opts: []Option{RateLimitAs(FnGetPosts)}},
	}

	for _, b := range builtins {
		if err := r.Register(b.name, b.fn, b.opts...); err != nil {
			return err
		}
	}
	return nil
}

func argsOf[T any](name string, args any) (T, error) {
	typed, ok := args.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s got %T: %w", name, args, ErrInvalidArguments)
	}
	return typed, nil
}

func login(accounts interfaces.AccountService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[LoginArgs](FnLogin, args)
		if err != nil {
			return nil, err
		}
		return accounts.Login(ctx, a.Email, a.Password)
	}
}

func register(accounts interfaces.AccountService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[RegisterArgs](FnRegister, args)
		if err != nil {
			return nil, err
		}
		return accounts.Register(ctx, a.Email, a.Password)
	}
}

func registerWithUser(accounts interfaces.AccountService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[RegisterArgs](FnRegisterWithUser, args)
		if err != nil {
			return nil, err
		}
		return accounts.RegisterWithUser(ctx, a.Email, a.Password, a.Name, a.Alias)
	}
}

func logout(accounts interfaces.AccountService) Func {
	return func(ctx context.Context, caller models.Identity, args any) (any, error) {
		a, err := argsOf[LogoutArgs](FnLogout, args)
		if err != nil {
			return nil, err
		}
		return accounts.Logout(ctx, caller, a.All)
	}
}

func createPost(posts interfaces.PostService) Func {
	return func(ctx context.Context, caller models.Identity, args any) (any, error) {
		a, err := argsOf[CreatePostArgs](FnCreatePost, args)
		if err != nil {
			return nil, err
		}
		return posts.CreatePost(ctx, caller, a.Title, a.Content, a.Hashtags)
	}
}

func getPosts(posts interfaces.PostService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[GetPostsArgs](FnGetPosts, args)
		if err != nil {
			return nil, err
		}
		return posts.GetPosts(ctx, a.Page)
	}
}

func getPostsByTag(posts interfaces.PostService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[GetPostsByTagArgs](FnGetPostsByTag, args)
		if err != nil {
			return nil, err
		}
		return posts.GetPostsByTag(ctx, a.Tag, a.Page)
	}
}

func getPostsByAuthor(posts interfaces.PostService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[GetPostsByAuthorArgs](FnGetPostsByAuthor, args)
		if err != nil {
			return nil, err
		}
		return posts.GetPostsByAuthor(ctx, a.AuthorID, a.Page)
	}
}

func getPostBySlug(posts interfaces.PostService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		a, err := argsOf[GetPostBySlugArgs](FnGetPostBySlug, args)
		if err != nil {
			return nil, err
		}
		return posts.GetPostBySlug(ctx, a.Slug)
	}
}

func listSlugs(posts interfaces.PostService) Func {
	return func(ctx context.Context, _ models.Identity, args any) (any, error) {
		if _, err := argsOf[ListSlugsArgs](FnListSlugs, args); err != nil {
			return nil, err
		}
		return posts.ListSlugs(ctx)
	}
}
