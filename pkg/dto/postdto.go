package dto

import "time"

type CreatePostRequestDTO struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Content  string   `json:"content" validate:"required,max=100000"`
	Hashtags []string `json:"hashtags" validate:"max=10,dive,min=1,max=40"`
}

type PostDTO struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Content  string    `json:"content"`
	Views    int64     `json:"views"`
	Created  time.Time `json:"created"`
	Author   *UserDTO  `json:"author,omitempty"`
	Hashtags []string  `json:"hashtags"`
}

type PostPageDTO struct {
	Posts []PostDTO `json:"posts"`
	Next  string    `json:"next,omitempty"`
}

// SlugsDTO lists the slug of every post, newest first, e.g. to
// prerender the post pages.
type SlugsDTO struct {
	Slugs []string `json:"slugs"`
}

type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
