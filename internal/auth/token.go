package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/notes-auth-service/internal/config"
)

// Claims describes the JWT payload. It carries only the username; there is no
// token id, issuer, or audience.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates the access/refresh token pair. The two
// secrets are distinct: a token signed with one never verifies with the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a manager from loaded configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL(),
		refreshTTL:    cfg.RefreshTokenTTL(),
	}
}

// IssueAccessToken signs a short-lived access token for username.
func (tm *TokenManager) IssueAccessToken(username string) (string, time.Time, error) {
	return issue(username, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for username.
func (tm *TokenManager) IssueRefreshToken(username string) (string, time.Time, error) {
	return issue(username, tm.refreshSecret, tm.refreshTTL)
}

// VerifyAccessToken validates signature and expiry against the access secret.
func (tm *TokenManager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, tm.accessSecret)
}

// VerifyRefreshToken validates signature and expiry against the refresh secret.
func (tm *TokenManager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, tm.refreshSecret)
}

func issue(username string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	// expiry is computed once and feeds both the signature and the returned
	// timestamp, so the two always agree
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
