package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/fastwell/fastwell/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewUserRepository(db)
	u := &user.User{
		ID:           "u1",
		Email:        "ana@example.com",
		DisplayName:  "Ana",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", byID.Email)
	require.Equal(t, "$2a$10$hash", byID.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewUserRepository(db)
	u := &user.User{ID: "u1", Email: "ana@example.com", DisplayName: "Ana", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, u))

	dup := &user.User{ID: "u2", Email: "ana@example.com", DisplayName: "Other", PasswordHash: "x", CreatedAt: time.Now()}
	require.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepository_ResolveUser(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")

	repo := NewTokenRepository(db)
	require.NoError(t, repo.Create(ctx, "hash1", "u1"))

	userID, err := repo.ResolveUser(ctx, "hash1")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	_, err = repo.ResolveUser(ctx, "unknown")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")

	repo := NewTokenRepository(db)
	require.NoError(t, repo.Create(ctx, "hash1", "u1"))
	require.NoError(t, repo.Delete(ctx, "hash1"))

	_, err := repo.ResolveUser(ctx, "hash1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepository_UnknownUser(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTokenRepository(db)

	err := repo.Create(context.Background(), "hash1", "ghost")
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
