package dto

import "time"

// RegisterRequest carries the inputs for creating a new user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginRequest carries the inputs for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the caller-facing view of a user record.
// Credentials never leave the auth boundary.
type UserResponse struct {
	UserID           int       `json:"user_id"`
	Username         string    `json:"username"`
	RegistrationDate time.Time `json:"registration_date"`
}
