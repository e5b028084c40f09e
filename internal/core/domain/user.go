package domain

import "time"

// User is a registered account holder. Credentials are stored as a
// salted hash; the plaintext password never leaves the auth boundary.
type User struct {
	UserID           int       `json:"user_id"`
	Username         string    `json:"username"`
	HashedPassword   string    `json:"hashed_password"`
	Salt             string    `json:"salt"`
	RegistrationDate time.Time `json:"registration_date"`
}
