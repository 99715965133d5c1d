package routes

import (
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/pkg/dto"
)

// newAccountDTO converts an account for the wire, dropping the password hash.
func newAccountDTO(a *models.Account) dto.AccountDTO {
	if a == nil {
		return dto.AccountDTO{}
	}
	out := dto.AccountDTO{ID: a.ID.Hex(), Email: a.Email}
	if !a.UserID.IsZero() {
		out.UserID = a.UserID.Hex()
	}
	return out
}

func newUserDTO(u *models.User) *dto.UserDTO {
	if u == nil {
		return nil
	}
	return &dto.UserDTO{ID: u.ID.Hex(), Name: u.Name, Alias: u.Alias, Icon: u.Icon}
}

func newPostDTO(p models.PostWithAuthor) dto.PostDTO {
	return dto.PostDTO{
		ID:       p.Post.ID.Hex(),
		Title:    p.Post.Title,
		Slug:     p.Post.Slug,
		Content:  p.Post.Content,
		Views:    p.Post.Views,
		Created:  p.Post.Created,
		Author:   newUserDTO(p.User),
		Hashtags: p.TagNames(),
	}
}

func newPostPageDTO(page *models.PostPage) dto.PostPageDTO {
	out := dto.PostPageDTO{Posts: make([]dto.PostDTO, 0)}
	if page == nil {
		return out
	}
	for _, item := range page.Items {
		out.Posts = append(out.Posts, newPostDTO(item))
	}
	out.Next = page.Next
	return out
}
