package functions

import "github.com/haguru/folio/internal/models"

// Function names.
const (
	FnLogin            = "login"
	FnRegister         = "register"
	FnRegisterWithUser = "register_with_user"
	FnLogout           = "logout"
	FnCreatePost       = "create_post"
	FnGetPosts         = "get_posts"
	FnGetPostsByTag    = "get_posts_by_tag"
	FnGetPostsByAuthor = "get_posts_by_author"
	FnGetPostBySlug    = "get_post_by_slug"
	FnListSlugs        = "list_slugs"
)

// Role grants the call privilege on a set of functions. All grants every
// function and Unlimited skips rate limiting.
type Role struct {
	Name       string
	Privileges []string
	All        bool
	Unlimited  bool
}

// Can reports whether the role may call fn.
func (r Role) Can(fn string) bool {
	if r.All {
		return true
	}
	for _, p := range r.Privileges {
		if p == fn {
			return true
		}
	}
	return false
}

// DefaultRoles returns the roles a secret can resolve to.
func DefaultRoles() []Role {
	return []Role{
		{
			Name: models.RoleBootstrap,
			Privileges: []string{
				FnLogin, FnRegister, FnRegisterWithUser,
				FnGetPosts, FnGetPostsByTag, FnGetPostsByAuthor, FnGetPostBySlug, FnListSlugs,
			},
		},
		{
			Name: models.RoleLoggedIn,
			Privileges: []string{
				FnCreatePost, FnGetPosts, FnGetPostsByTag, FnGetPostsByAuthor, FnGetPostBySlug, FnListSlugs, FnLogout,
			},
		},
		{Name: models.RoleAdmin, All: true, Unlimited: true},
		{Name: models.RolePowerless},
	}
}
