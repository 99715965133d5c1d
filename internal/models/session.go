package models

// Session is what register and login hand back to the caller.
type Session struct {
	Secret  string   `json:"secret"`
	Account *Account `json:"account"`
	User    *User    `json:"user,omitempty"`
}
