package user

import "context"

// UserRepository manages account persistence
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenRepository manages bearer-token persistence. Tokens are stored as
// sha256 hashes only.
type TokenRepository interface {
	Create(ctx context.Context, hash, userID string) error
	ResolveUser(ctx context.Context, hash string) (string, error)
	Delete(ctx context.Context, hash string) error
}
