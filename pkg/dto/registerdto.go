// Package dto holds the JSON bodies of the folio API, shared by the server
// and pkg/client.
package dto

// RegisterRequestDTO registers an account. When Name is set a user
// profile is created with it.
type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Name     string `json:"name" validate:"omitempty,min=1,max=64"`
	Alias    string `json:"alias" validate:"omitempty,alphanum,min=2,max=32"`
}

type AccountDTO struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Icon  string `json:"icon"`
}

type RegisterResponseDTO struct {
	Message string     `json:"message"`
	Secret  string     `json:"secret"`
	Account AccountDTO `json:"account"`
	User    *UserDTO   `json:"user,omitempty"`
}
