package auth

import "errors"

// Verification failure kinds. Callers log them distinctly but must surface a
// single generic authentication failure externally.
var (
	// ErrTokenNotFound means no bearer token was present in the request.
	ErrTokenNotFound = errors.New("token not found")
	// ErrInvalidToken means the signature or payload shape did not check out.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the signature is valid but the token is past expiry.
	ErrExpiredToken = errors.New("token expired")
)
