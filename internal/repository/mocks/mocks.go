package mocks

import (
	"context"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/domain/fast"
	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// FastStore is a mock for fast.Store.
type FastStore struct {
	mock.Mock
}

func (m *FastStore) SaveFast(ctx context.Context, f fast.Fast) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *FastStore) GetFast(ctx context.Context, id string) (fast.Fast, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(fast.Fast); ok {
		return f, args.Error(1)
	}
	return fast.Fast{}, args.Error(1)
}

func (m *FastStore) ListFasts(ctx context.Context) ([]fast.Fast, error) {
	args := m.Called(ctx)
	if fasts, ok := args.Get(0).([]fast.Fast); ok {
		return fasts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FastStore) DeleteFast(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// TokenRepository is a mock for repository.TokenRepository.
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Create(ctx context.Context, hash, userID string) error {
	args := m.Called(ctx, hash, userID)
	return args.Error(0)
}

func (m *TokenRepository) ResolveUser(ctx context.Context, hash string) (string, error) {
	args := m.Called(ctx, hash)
	return args.String(0), args.Error(1)
}

func (m *TokenRepository) Delete(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

// CircleRepository is a mock for repository.CircleRepository.
type CircleRepository struct {
	mock.Mock
}

func (m *CircleRepository) Create(ctx context.Context, c *circle.Circle) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CircleRepository) Get(ctx context.Context, id string) (*circle.Circle, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*circle.Circle); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CircleRepository) GetByInviteCode(ctx context.Context, code string) (*circle.Circle, error) {
	args := m.Called(ctx, code)
	if c, ok := args.Get(0).(*circle.Circle); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CircleRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CircleRepository) ListForUser(ctx context.Context, userID string) ([]circle.Summary, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]circle.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CircleRepository) AddMember(ctx context.Context, circleID, userID string, role circle.Role) error {
	args := m.Called(ctx, circleID, userID, role)
	return args.Error(0)
}

func (m *CircleRepository) RemoveMember(ctx context.Context, circleID, userID string) error {
	args := m.Called(ctx, circleID, userID)
	return args.Error(0)
}

func (m *CircleRepository) IsMember(ctx context.Context, circleID, userID string) (bool, error) {
	args := m.Called(ctx, circleID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *CircleRepository) ListMembers(ctx context.Context, circleID string) ([]circle.Member, error) {
	args := m.Called(ctx, circleID)
	if list, ok := args.Get(0).([]circle.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MessageRepository is a mock for repository.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *circle.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) ListSince(ctx context.Context, circleID string, since int64, limit int) ([]circle.Message, error) {
	args := m.Called(ctx, circleID, since, limit)
	if list, ok := args.Get(0).([]circle.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) Search(ctx context.Context, circleID, query string, limit int) ([]circle.Message, error) {
	args := m.Called(ctx, circleID, query, limit)
	if list, ok := args.Get(0).([]circle.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
