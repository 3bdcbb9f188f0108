package circle

import "time"

// Circle represents a social group sharing fasting progress.
type Circle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	InviteCode  string    `json:"invite_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role of a circle member.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// Member links a user to a circle.
type Member struct {
	CircleID string    `json:"circle_id"`
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Summary is a lightweight circle representation for listing.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is one chat message in a circle. SentAt is unix milliseconds so
// clients can poll with a since watermark.
type Message struct {
	ID         string `json:"id"`
	CircleID   string `json:"circle_id"`
	UserID     string `json:"user_id"`
	AuthorName string `json:"author_name,omitempty"`
	Body       string `json:"body"`
	SentAt     int64  `json:"sent_at"`
}
