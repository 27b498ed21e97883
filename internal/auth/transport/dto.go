// Package transport defines request and response DTOs for the auth module.
package transport

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// AdminCheckResponse reports whether the caller holds the admin role.
type AdminCheckResponse struct {
	IsAdmin bool `json:"isAdmin"`
}
