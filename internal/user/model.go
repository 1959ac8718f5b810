package user

import "time"

// User is the response-facing account record. The password hash never
// appears here; it lives only on UserWithHash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWithHash pairs an account with its stored password hash. Internal to
// the signup/signin flow and the repositories.
type UserWithHash struct {
	User
	PasswordHash string `json:"-"`
}
