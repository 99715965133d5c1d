package dto

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponseDTO struct {
	Message string     `json:"message"`
	Secret  string     `json:"secret"`
	Account AccountDTO `json:"account"`
	User    *UserDTO   `json:"user,omitempty"`
}

type LogoutRequestDTO struct {
	All bool `json:"all"`
}

type LogoutResponseDTO struct {
	Message string `json:"message"`
	Revoked int64  `json:"revoked"`
}
