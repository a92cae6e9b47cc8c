package dto

import "time"

// CreateUserRequest is the JSON body for POST /users. Password is write-only.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=1"`
}

// UpdateUserRequest is a partial update: nil = leave the field as is.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=120"`
	Email    *string `json:"email" binding:"omitempty,email,max=254"`
	Password *string `json:"password" binding:"omitempty,min=1"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListUsersResponse struct {
	Items []UserResponse `json:"items"`
}
