package user

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Token is an issued bearer token, stored hashed.
type Token struct {
	Hash      string
	UserID    string
	CreatedAt time.Time
}
