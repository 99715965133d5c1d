package constants

const (
	AccountsCollection  = "accounts"
	UsersCollection     = "users"
	PostsCollection     = "posts"
	HashtagsCollection  = "hashtags"
	RateLimitCollection = "rate_limiting"
	TokensCollection    = "tokens"
)

const (
	MAXLENGTH_EMAIL   = 254
	MAXLENGTH_SLUG    = 80
	MAXLENGTH_HASHTAG = 40
	// MAX_SLUG_ATTEMPTS bounds the -2, -3, ... suffixes tried on a slug collision.
	MAX_SLUG_ATTEMPTS = 20
)
