package model

// User is the authenticated account as returned by GET /auth/me.
type User struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	FullName   *string `json:"full_name"`
	IsVerified bool    `json:"is_verified"`
	IsActive   bool    `json:"is_active"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse wraps the user returned on a successful login.
type LoginResponse struct {
	User User `json:"user"`
}

// RegisterRequest is the payload for POST /auth/register. Registration does
// not authenticate; the account must verify its email first.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// OAuthCallbackRequest carries the provider code for POST /auth/github/callback.
type OAuthCallbackRequest struct {
	Code string `json:"code"`
}
