package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/fastwell/fastwell/internal/repository"
)

// UserRepository implements repository.UserRepository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.DisplayName,
		u.PasswordHash,
		u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.get(ctx, `WHERE email = ?`, email)
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at
		FROM users
	` + where

	var u user.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// TokenRepository implements repository.TokenRepository for SQLite
type TokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a token hash for a user
func (r *TokenRepository) Create(ctx context.Context, hash, userID string) error {
	query := `INSERT INTO auth_tokens (token_hash, user_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, hash, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// ResolveUser maps a token hash to its user id and stamps last use
func (r *TokenRepository) ResolveUser(ctx context.Context, hash string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM auth_tokens WHERE token_hash = ?`, hash).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}

	_, _ = r.db.ExecContext(ctx,
		`UPDATE auth_tokens SET last_used = CURRENT_TIMESTAMP WHERE token_hash = ?`, hash)

	return userID, nil
}

// Delete revokes a token
func (r *TokenRepository) Delete(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = ?`, hash)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
