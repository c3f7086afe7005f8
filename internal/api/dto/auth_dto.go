package dto

import (
	"time"

	"github.com/spec-kit/notes-auth-service/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenInfo is the wire shape of an issued token. ExpiresAt is epoch
// milliseconds.
type TokenInfo struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// UserResponse is the wire shape of an account. The password hash is never
// serialized.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthData is the login/signup response payload.
type AuthData struct {
	User         UserResponse `json:"user"`
	AccessToken  TokenInfo    `json:"access_token"`
	RefreshToken TokenInfo    `json:"refresh_token"`
}

// NewTokenInfo converts a stored token record.
func NewTokenInfo(record domain.TokenRecord) TokenInfo {
	return TokenInfo{Token: record.Token, ExpiresAt: record.ExpiresAt}
}

// NewUserResponse converts a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	permissions := make([]string, 0, len(user.Permissions))
	for _, p := range user.Permissions {
		permissions = append(permissions, string(p))
	}
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Permissions: permissions,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// NewAuthData assembles the auth response payload.
func NewAuthData(user *domain.User, pair *domain.TokenPair) AuthData {
	return AuthData{
		User:         NewUserResponse(user),
		AccessToken:  NewTokenInfo(pair.AccessToken),
		RefreshToken: NewTokenInfo(pair.RefreshToken),
	}
}
