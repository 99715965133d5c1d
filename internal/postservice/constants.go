package postservice

const (
	// Error messages for post service operations
	ErrFailedToCreatePost   = "failed to create post"
	ErrFailedToResolveTags  = "failed to resolve hashtags"
	ErrFailedToListPosts    = "failed to list posts"
	ErrFailedToGetPost      = "failed to get post"
	ErrFailedToCountView    = "failed to count post view"
	ErrFailedToReadNewPost  = "failed to read created post"
	ErrSlugAttemptsExceeded = "no free slug left"

	MaxTitleLength   = 200
	MaxContentLength = 100000
	MaxHashtags      = 10
)
