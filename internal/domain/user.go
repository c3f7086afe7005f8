package domain

import "time"

// Permission grants access to note operations.
type Permission string

const (
	PermissionReadNotes   Permission = "read-notes"
	PermissionEditNotes   Permission = "edit-notes"
	PermissionDeleteNotes Permission = "delete-notes"
)

// DefaultPermissions is the set granted to every new account.
func DefaultPermissions() []Permission {
	return []Permission{PermissionReadNotes}
}

// ValidPermission reports whether p is a known permission value.
func ValidPermission(p Permission) bool {
	switch p {
	case PermissionReadNotes, PermissionEditNotes, PermissionDeleteNotes:
		return true
	}
	return false
}

// User is the domain model for accounts. PasswordHash never holds plaintext
// after creation.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Permissions  []Permission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
