package dto

// UserCreateRequest payload for administrative account creation.
type UserCreateRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions,omitempty"`
}

// UserUpdateRequest payload for profile updates. Nil fields are left
// unchanged.
type UserUpdateRequest struct {
	Username    *string  `json:"username,omitempty"`
	Password    *string  `json:"password,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}
