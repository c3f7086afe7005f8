package auth

import "strings"

// BearerToken extracts the bearer value from an Authorization header: the
// second whitespace-delimited segment. A missing header or missing segment
// fails before any cryptographic check runs.
func BearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", ErrTokenNotFound
	}
	return parts[1], nil
}
