// Package auth provides authentication and session functionality.
// This file defines the request/response payloads of the auth API surface.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" example:"Barak Obama"`
	Login    string `json:"login" example:"my_login"`
	Email    string `json:"email" example:"login@ukr.net"`
	Password string `json:"password" example:"732$!714RF1#721n"`
	Notes    string `json:"notes,omitempty" example:"allergic to peanuts"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      int64  `json:"id" example:"656"`
	Login   string `json:"login" example:"my_login"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Login    string `json:"login" example:"my_login"`
	Password string `json:"password" example:"732$!714RF1#721n"`
}

// LoginResponse is returned on successful login. The session itself travels
// in the cookie, not in the body.
type LoginResponse struct {
	User     string `json:"user" example:"my_login"`
	LoggedIn bool   `json:"logged_in" example:"true"`
}

// LogoutResponse acknowledges a logout.
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out" example:"true"`
}

// AccountDeletedResponse acknowledges an account deletion.
type AccountDeletedResponse struct {
	AccountDeleted bool `json:"account_deleted" example:"true"`
}
