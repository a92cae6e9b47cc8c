package domain

import "time"

// User is the domain entity for a user account.
// PasswordHash is never exposed outside the service layer.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch is a partial update: nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
}
