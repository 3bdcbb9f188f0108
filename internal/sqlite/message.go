package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/repository"
)

// MessageRepository implements repository.MessageRepository for SQLite
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a chat message
func (r *MessageRepository) Create(ctx context.Context, m *circle.Message) error {
	query := `
		INSERT INTO circle_messages (id, circle_id, user_id, body, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.CircleID,
		m.UserID,
		m.Body,
		m.SentAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListSince returns messages sent strictly after the since watermark,
// oldest first
func (r *MessageRepository) ListSince(ctx context.Context, circleID string, since int64, limit int) ([]circle.Message, error) {
	query := `
		SELECT m.id, m.circle_id, m.user_id, u.display_name, m.body, m.sent_at
		FROM circle_messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.circle_id = ? AND m.sent_at > ?
		ORDER BY m.sent_at, m.id
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, circleID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// Search runs a full-text query over a circle's chat history
func (r *MessageRepository) Search(ctx context.Context, circleID, query string, limit int) ([]circle.Message, error) {
	stmt := `
		SELECT m.id, m.circle_id, m.user_id, u.display_name, m.body, m.sent_at
		FROM circle_messages_fts f
		JOIN circle_messages m ON m.rowid = f.rowid
		JOIN users u ON u.id = m.user_id
		WHERE circle_messages_fts MATCH ? AND m.circle_id = ?
		ORDER BY f.rank
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, stmt, ftsQuery(query), circleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]circle.Message, error) {
	messages := []circle.Message{}
	for rows.Next() {
		var m circle.Message
		if err := rows.Scan(&m.ID, &m.CircleID, &m.UserID, &m.AuthorName, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ftsQuery quotes each term so user input can't inject FTS5 operators.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
