package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/repository"
)

// CircleRepository implements repository.CircleRepository for SQLite
type CircleRepository struct {
	db *DB
}

// NewCircleRepository creates a new CircleRepository
func NewCircleRepository(db *DB) *CircleRepository {
	return &CircleRepository{db: db}
}

// Create inserts a new circle
func (r *CircleRepository) Create(ctx context.Context, c *circle.Circle) error {
	query := `
		INSERT INTO circles (id, name, description, owner_id, invite_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.OwnerID,
		c.InviteCode,
		c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create circle: %w", err)
	}

	return nil
}

// Get retrieves a circle by id
func (r *CircleRepository) Get(ctx context.Context, id string) (*circle.Circle, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

// GetByInviteCode retrieves a circle by its invite code
func (r *CircleRepository) GetByInviteCode(ctx context.Context, code string) (*circle.Circle, error) {
	return r.get(ctx, `WHERE invite_code = ?`, code)
}

func (r *CircleRepository) get(ctx context.Context, where string, arg any) (*circle.Circle, error) {
	query := `
		SELECT id, name, description, owner_id, invite_code, created_at
		FROM circles
	` + where

	var c circle.Circle
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.Name,
		&description,
		&c.OwnerID,
		&c.InviteCode,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	c.Description = description.String

	return &c, nil
}

// Delete removes a circle; members and messages cascade
func (r *CircleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM circles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete circle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete circle: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListForUser returns summaries of the circles a user belongs to
func (r *CircleRepository) ListForUser(ctx context.Context, userID string) ([]circle.Summary, error) {
	query := `
		SELECT c.id, c.name, c.description, c.created_at,
			(SELECT COUNT(*) FROM circle_members m2 WHERE m2.circle_id = c.id) AS member_count
		FROM circles c
		JOIN circle_members m ON m.circle_id = c.id
		WHERE m.user_id = ?
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}
	defer rows.Close()

	summaries := []circle.Summary{}
	for rows.Next() {
		var s circle.Summary
		var description sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &description, &s.CreatedAt, &s.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		s.Description = description.String
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// AddMember adds a user to a circle
func (r *CircleRepository) AddMember(ctx context.Context, circleID, userID string, role circle.Role) error {
	query := `INSERT INTO circle_members (circle_id, user_id, role) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, circleID, userID, role)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a circle
func (r *CircleRepository) RemoveMember(ctx context.Context, circleID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM circle_members WHERE circle_id = ? AND user_id = ?`, circleID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// IsMember reports whether a user belongs to a circle
func (r *CircleRepository) IsMember(ctx context.Context, circleID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM circle_members WHERE circle_id = ? AND user_id = ?`,
		circleID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// ListMembers returns the members of a circle
func (r *CircleRepository) ListMembers(ctx context.Context, circleID string) ([]circle.Member, error) {
	query := `
		SELECT circle_id, user_id, role, joined_at
		FROM circle_members
		WHERE circle_id = ?
		ORDER BY joined_at, user_id
	`

	rows, err := r.db.QueryContext(ctx, query, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []circle.Member{}
	for rows.Next() {
		var m circle.Member
		if err := rows.Scan(&m.CircleID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
