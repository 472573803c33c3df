package model

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreatedResponse is the body returned by every POST that creates an entity.
// ID is a UUID string for users and a number for everything else.
type CreatedResponse[T string | int64] struct {
	ID T `json:"id"`
}
