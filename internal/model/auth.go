package model

type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// AuthUser is the identity extracted from a verified bearer token.
type AuthUser struct {
	Username string
}

// CredentialsForm is the form body consumed by POST /register and
// POST /token.
type CredentialsForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterResponse struct {
	Msg string `json:"msg"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
