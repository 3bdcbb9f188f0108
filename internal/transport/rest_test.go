package transport

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fastwell/fastwell/internal/domain/circle"
	"github.com/fastwell/fastwell/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	require.NoError(t, decodeJSON(strings.NewReader(`{"name":"ok"}`), &dst))
	require.Equal(t, "ok", dst.Name)

	require.Error(t, decodeJSON(strings.NewReader(`{"name":"ok"} trailing`), &dst))
	require.Error(t, decodeJSON(strings.NewReader(`{"unknown":"field"}`), &dst))
	require.Error(t, decodeJSON(strings.NewReader(`not json`), &dst))
}

func TestWriteDomainError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{user.ErrInvalidCredentials, 401},
		{circle.ErrNotMember, 403},
		{circle.ErrNotOwner, 403},
		{circle.ErrOwnerCannotLeave, 403},
		{circle.ErrCircleNotFound, 404},
		{circle.ErrInviteNotFound, 404},
		{user.ErrUserNotFound, 404},
		{user.ErrEmailTaken, 409},
		{circle.ErrAlreadyMember, 409},
		{user.ErrInvalidInput, 400},
		{circle.ErrInvalidInput, 400},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeDomainError(rec, tc.err)
		require.Equal(t, tc.code, rec.Code, "error %v", tc.err)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}

	rec := httptest.NewRecorder()
	writeDomainError(rec, errors.New("boom"))
	require.Equal(t, 500, rec.Code)
}
