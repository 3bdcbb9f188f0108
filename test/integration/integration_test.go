package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/fastwell/fastwell/internal/sqlite"
	"github.com/fastwell/fastwell/internal/transport"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userSvc := user.NewService(sqlite.NewUserRepository(db), sqlite.NewTokenRepository(db), logger)
	circleSvc := circle.NewService(sqlite.NewCircleRepository(db), sqlite.NewMessageRepository(db), logger, nil)

	router := transport.NewServer(transport.Services{Users: userSvc, Circles: circleSvc}, logger)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server}
}

// do sends a JSON request with an optional bearer token and decodes the
// JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) registerAndLogin(t *testing.T, email, name string) (token, userID string) {
	t.Helper()

	var registered user.User
	status := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":        email,
		"display_name": name,
		"password":     "hunter2secret",
	}, &registered)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	status = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "hunter2secret",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	return login.Token, login.User.ID
}

func TestIntegration_CircleChatWorkflow(t *testing.T) {
	env := newTestEnv(t)

	ownerToken, ownerID := env.registerAndLogin(t, "ana@example.com", "Ana")
	memberToken, _ := env.registerAndLogin(t, "ben@example.com", "Ben")

	var me user.User
	status := env.do(t, http.MethodGet, "/me", ownerToken, nil, &me)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, ownerID, me.ID)

	var created circle.Circle
	status = env.do(t, http.MethodPost, "/circles", ownerToken, map[string]string{
		"name":        "Morning Fasters",
		"description": "16:8 accountability",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, ownerID, created.OwnerID)
	require.NotEmpty(t, created.InviteCode)

	var joined circle.Circle
	status = env.do(t, http.MethodPost, "/circles/join", memberToken, map[string]string{
		"invite_code": created.InviteCode,
	}, &joined)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, created.ID, joined.ID)

	var summaries []circle.Summary
	status = env.do(t, http.MethodGet, "/circles", memberToken, nil, &summaries)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, summaries, 1)
	require.Equal(t, 2, summaries[0].MemberCount)

	var first circle.Message
	status = env.do(t, http.MethodPost, "/circles/"+created.ID+"/messages", ownerToken, map[string]string{
		"body": "18 hours, new record",
	}, &first)
	require.Equal(t, http.StatusCreated, status)

	// Keep the two messages on distinct millisecond timestamps so the
	// since watermark below is unambiguous.
	time.Sleep(2 * time.Millisecond)

	var second circle.Message
	status = env.do(t, http.MethodPost, "/circles/"+created.ID+"/messages", memberToken, map[string]string{
		"body": "nice, just started mine",
	}, &second)
	require.Equal(t, http.StatusCreated, status)

	// Poll from the beginning, then from the first message's watermark.
	var messages []circle.Message
	status = env.do(t, http.MethodGet, "/circles/"+created.ID+"/messages", memberToken, nil, &messages)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, messages, 2)
	require.Equal(t, "Ana", messages[0].AuthorName)

	status = env.do(t, http.MethodGet,
		fmt.Sprintf("/circles/%s/messages?since=%d", created.ID, first.SentAt), memberToken, nil, &messages)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, messages, 1)
	require.Equal(t, second.ID, messages[0].ID)

	var found []circle.Message
	status = env.do(t, http.MethodGet, "/circles/"+created.ID+"/messages/search?q=record", memberToken, nil, &found)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, found, 1)
	require.Equal(t, first.ID, found[0].ID)

	status = env.do(t, http.MethodPost, "/circles/"+created.ID+"/leave", memberToken, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = env.do(t, http.MethodGet, "/circles", memberToken, nil, &summaries)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, summaries)

	status = env.do(t, http.MethodDelete, "/circles/"+created.ID, ownerToken, nil, nil)
	require.Equal(t, http.StatusNoContent, status)
}

func TestIntegration_AuthAndAccessControl(t *testing.T) {
	env := newTestEnv(t)

	ownerToken, _ := env.registerAndLogin(t, "ana@example.com", "Ana")
	strangerToken, _ := env.registerAndLogin(t, "eve@example.com", "Eve")

	// Duplicate registration conflicts.
	status := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":        "ana@example.com",
		"display_name": "Ana again",
		"password":     "hunter2secret",
	}, nil)
	require.Equal(t, http.StatusConflict, status)

	// Wrong password is rejected.
	status = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// Protected routes need a valid token.
	status = env.do(t, http.MethodGet, "/me", "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	status = env.do(t, http.MethodGet, "/me", "not-a-token", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	var created circle.Circle
	status = env.do(t, http.MethodPost, "/circles", ownerToken, map[string]string{
		"name": "Morning Fasters",
	}, &created)
	require.Equal(t, http.StatusCreated, status)

	// Non-members cannot read or post.
	status = env.do(t, http.MethodGet, "/circles/"+created.ID, strangerToken, nil, nil)
	require.Equal(t, http.StatusForbidden, status)
	status = env.do(t, http.MethodPost, "/circles/"+created.ID+"/messages", strangerToken, map[string]string{
		"body": "let me in",
	}, nil)
	require.Equal(t, http.StatusForbidden, status)

	// Only the owner deletes; the owner cannot leave.
	status = env.do(t, http.MethodPost, "/circles/join", strangerToken, map[string]string{
		"invite_code": created.InviteCode,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	status = env.do(t, http.MethodDelete, "/circles/"+created.ID, strangerToken, nil, nil)
	require.Equal(t, http.StatusForbidden, status)
	status = env.do(t, http.MethodPost, "/circles/"+created.ID+"/leave", ownerToken, nil, nil)
	require.Equal(t, http.StatusForbidden, status)

	// Bad invite codes 404.
	status = env.do(t, http.MethodPost, "/circles/join", ownerToken, map[string]string{
		"invite_code": "ffffffff",
	}, nil)
	require.Equal(t, http.StatusNotFound, status)
}
