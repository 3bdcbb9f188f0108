package circle

import "context"

// CircleRepository manages circle and membership persistence
type CircleRepository interface {
	Create(ctx context.Context, c *Circle) error
	Get(ctx context.Context, id string) (*Circle, error)
	GetByInviteCode(ctx context.Context, code string) (*Circle, error)
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]Summary, error)
	AddMember(ctx context.Context, circleID, userID string, role Role) error
	RemoveMember(ctx context.Context, circleID, userID string) error
	IsMember(ctx context.Context, circleID, userID string) (bool, error)
	ListMembers(ctx context.Context, circleID string) ([]Member, error)
}

// MessageRepository manages circle chat persistence
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	ListSince(ctx context.Context, circleID string, since int64, limit int) ([]Message, error)
	Search(ctx context.Context, circleID, query string, limit int) ([]Message, error)
}
