package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/repository"
	"github.com/stretchr/testify/require"
)

func insertMessage(t *testing.T, db *DB, id, circleID, userID, body string, sentAt int64) {
	t.Helper()
	repo := NewMessageRepository(db)
	err := repo.Create(context.Background(), &circle.Message{
		ID:       id,
		CircleID: circleID,
		UserID:   userID,
		Body:     body,
		SentAt:   sentAt,
	})
	require.NoError(t, err)
}

func TestMessageRepository_ListSince(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")
	insertCircle(t, db, "c1", "u1", "abcd1234")

	base := time.Now().UnixMilli()
	insertMessage(t, db, "m1", "c1", "u1", "first", base)
	insertMessage(t, db, "m2", "c1", "u1", "second", base+1000)
	insertMessage(t, db, "m3", "c1", "u1", "third", base+2000)

	repo := NewMessageRepository(db)

	// A zero watermark returns the full history, oldest first.
	all, err := repo.ListSince(ctx, "c1", 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "first", all[0].Body)
	require.Equal(t, "User u1", all[0].AuthorName)

	// The watermark is exclusive: polling with the last seen sent_at
	// returns only newer messages.
	newer, err := repo.ListSince(ctx, "c1", base+1000, 100)
	require.NoError(t, err)
	require.Len(t, newer, 1)
	require.Equal(t, "third", newer[0].Body)
}

func TestMessageRepository_ListSinceLimit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")
	insertCircle(t, db, "c1", "u1", "abcd1234")

	base := time.Now().UnixMilli()
	for i := 0; i < 5; i++ {
		insertMessage(t, db, fmt.Sprintf("m%d", i), "c1", "u1", fmt.Sprintf("msg %d", i), base+int64(i))
	}

	repo := NewMessageRepository(db)
	messages, err := repo.ListSince(ctx, "c1", 0, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "msg 0", messages[0].Body)
}

func TestMessageRepository_CircleIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")
	insertCircle(t, db, "c1", "u1", "code-one")
	insertCircle(t, db, "c2", "u1", "code-two")

	now := time.Now().UnixMilli()
	insertMessage(t, db, "m1", "c1", "u1", "hello c1", now)
	insertMessage(t, db, "m2", "c2", "u1", "hello c2", now)

	repo := NewMessageRepository(db)
	messages, err := repo.ListSince(ctx, "c1", 0, 100)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "hello c1", messages[0].Body)
}

func TestMessageRepository_Search(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")
	insertCircle(t, db, "c1", "u1", "code-one")
	insertCircle(t, db, "c2", "u1", "code-two")

	now := time.Now().UnixMilli()
	insertMessage(t, db, "m1", "c1", "u1", "finished my eighteen hour fast today", now)
	insertMessage(t, db, "m2", "c1", "u1", "struggled this morning", now+1)
	insertMessage(t, db, "m3", "c2", "u1", "eighteen hours here too", now+2)

	repo := NewMessageRepository(db)
	hits, err := repo.Search(ctx, "c1", "eighteen", 100)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "m1", hits[0].ID)
}

func TestMessageRepository_SearchQuotesOperators(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1", "u1@example.com")
	insertCircle(t, db, "c1", "u1", "code-one")
	insertMessage(t, db, "m1", "c1", "u1", "almost AND done", time.Now().UnixMilli())

	// Raw FTS operators in user input must not cause a query error.
	repo := NewMessageRepository(db)
	_, err := repo.Search(ctx, "c1", `AND OR NOT "`, 100)
	require.NoError(t, err)
}

func TestMessageRepository_UnknownCircle(t *testing.T) {
	db := NewTestDB(t)
	insertUser(t, db, "u1", "u1@example.com")

	repo := NewMessageRepository(db)
	err := repo.Create(context.Background(), &circle.Message{
		ID: "m1", CircleID: "ghost", UserID: "u1", Body: "hi", SentAt: time.Now().UnixMilli(),
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}
