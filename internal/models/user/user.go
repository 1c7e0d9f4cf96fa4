package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	IsStaff      bool      `json:"-"`
	IsSuperuser  bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update; nil fields are left as-is.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}
