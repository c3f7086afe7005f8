package domain

import "time"

// TokenRecord is a signed token plus its absolute expiry in epoch milliseconds.
type TokenRecord struct {
	Token     string
	ExpiresAt int64
}

// TokenPair is the single stored {access, refresh} pair owned by a user.
// At most one pair exists per user id; login replaces it wholesale.
type TokenPair struct {
	ID           string
	UserID       string
	AccessToken  TokenRecord
	RefreshToken TokenRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTokenRecord converts an absolute expiry to the stored millisecond form.
func NewTokenRecord(token string, expiresAt time.Time) TokenRecord {
	return TokenRecord{Token: token, ExpiresAt: expiresAt.UnixMilli()}
}
