package circle

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fastwell/fastwell/internal/repository"
	"github.com/google/uuid"
)

const (
	maxMessageLen       = 2000
	defaultMessageLimit = 100
)

// Service handles circle and chat business logic. All read and write
// paths check membership; deletion is owner-only.
type Service struct {
	circles  CircleRepository
	messages MessageRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new circle service.
func NewService(circles CircleRepository, messages MessageRepository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{circles: circles, messages: messages, logger: logger, now: now}
}

// Create makes a new circle with the creator as its owner member.
func (s *Service) Create(ctx context.Context, ownerID, name, description string) (*Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}

	code, err := newInviteCode()
	if err != nil {
		return nil, err
	}
	c := &Circle{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		InviteCode:  code,
		CreatedAt:   s.now(),
	}
	if err := s.circles.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating circle: %w", err)
	}
	if err := s.circles.AddMember(ctx, c.ID, ownerID, RoleOwner); err != nil {
		return nil, fmt.Errorf("adding owner member: %w", err)
	}

	s.logger.Info("circle created", "circle_id", c.ID, "owner_id", ownerID)
	return c, nil
}

// Get returns a circle; the caller must be a member.
func (s *Service) Get(ctx context.Context, userID, circleID string) (*Circle, error) {
	if err := s.requireMember(ctx, userID, circleID); err != nil {
		return nil, err
	}
	c, err := s.circles.Get(ctx, circleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListForUser returns the circles the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Summary, error) {
	return s.circles.ListForUser(ctx, userID)
}

// Join adds the user to the circle matching an invite code.
func (s *Service) Join(ctx context.Context, userID, inviteCode string) (*Circle, error) {
	c, err := s.circles.GetByInviteCode(ctx, strings.TrimSpace(inviteCode))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if err := s.circles.AddMember(ctx, c.ID, userID, RoleMember); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("adding member: %w", err)
	}

	s.logger.Info("member joined circle", "circle_id", c.ID, "user_id", userID)
	return c, nil
}

// Leave removes the user from a circle. The owner must delete the circle
// instead.
func (s *Service) Leave(ctx context.Context, userID, circleID string) error {
	c, err := s.circles.Get(ctx, circleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCircleNotFound
		}
		return err
	}
	if c.OwnerID == userID {
		return ErrOwnerCannotLeave
	}
	if err := s.requireMember(ctx, userID, circleID); err != nil {
		return err
	}
	return s.circles.RemoveMember(ctx, circleID, userID)
}

// Delete removes a circle and everything in it. Owner only.
func (s *Service) Delete(ctx context.Context, userID, circleID string) error {
	c, err := s.circles.Get(ctx, circleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCircleNotFound
		}
		return err
	}
	if c.OwnerID != userID {
		return ErrNotOwner
	}
	if err := s.circles.Delete(ctx, circleID); err != nil {
		return fmt.Errorf("deleting circle: %w", err)
	}

	s.logger.Info("circle deleted", "circle_id", circleID)
	return nil
}

// PostMessage appends a chat message; the caller must be a member.
func (s *Service) PostMessage(ctx context.Context, userID, circleID, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLen {
		return nil, fmt.Errorf("%w: message body must be 1-%d characters", ErrInvalidInput, maxMessageLen)
	}
	if err := s.requireMember(ctx, userID, circleID); err != nil {
		return nil, err
	}

	m := &Message{
		ID:       uuid.NewString(),
		CircleID: circleID,
		UserID:   userID,
		Body:     body,
		SentAt:   s.now().UnixMilli(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return m, nil
}

// MessagesSince returns messages sent after the given unix-millisecond
// watermark, oldest first, for the chat polling loop.
func (s *Service) MessagesSince(ctx context.Context, userID, circleID string, since int64) ([]Message, error) {
	if err := s.requireMember(ctx, userID, circleID); err != nil {
		return nil, err
	}
	return s.messages.ListSince(ctx, circleID, since, defaultMessageLimit)
}

// SearchMessages runs a full-text search over the circle's chat history.
func (s *Service) SearchMessages(ctx context.Context, userID, circleID, query string) ([]Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query required", ErrInvalidInput)
	}
	if err := s.requireMember(ctx, userID, circleID); err != nil {
		return nil, err
	}
	return s.messages.Search(ctx, circleID, query, defaultMessageLimit)
}

func (s *Service) requireMember(ctx context.Context, userID, circleID string) error {
	ok, err := s.circles.IsMember(ctx, circleID, userID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}

func newInviteCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invite code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
