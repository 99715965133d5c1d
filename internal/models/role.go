package models

// Role names. A secret resolves to exactly one of them.
const (
	// RoleBootstrap is held by the bootstrap key. It may only log in,
	// register and read.
	RoleBootstrap = "keyrole_calludfs"
	// RoleLoggedIn is held by session secrets issued on login or register.
	RoleLoggedIn = "membershiprole_loggedin"
	// RoleAdmin is held by the admin key. It may call anything, unlimited.
	RoleAdmin = "admin"
	// RolePowerless may call nothing.
	RolePowerless = "powerless"
)
