package apierr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func renderErr(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Abort(c, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestAbortKinds(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindInvalidCredential, http.StatusForbidden},
		{KindAccountUnavailable, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindServer, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := renderErr(t, New(tc.kind, "nope"))
		require.Equal(t, tc.status, status)
		require.Equal(t, false, body["success"])
		require.Equal(t, "nope", body["message"])
	}
}

func TestAbortStatusOverride(t *testing.T) {
	status, body := renderErr(t, New(KindConflict, "duplicate email").WithStatus(http.StatusBadRequest))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "duplicate email", body["message"])
}

func TestAbortServerEmbedsCause(t *testing.T) {
	status, body := renderErr(t, Wrap(errors.New("write posts: socket closed"), KindServer, "server error"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Contains(t, body["message"], "socket closed")
}

func TestAbortUnknownError(t *testing.T) {
	status, body := renderErr(t, errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Contains(t, body["message"], "boom")
}

func TestAbortWrappedError(t *testing.T) {
	wrapped := errors.Wrap(New(KindNotFound, "user not found"), "get user")
	status, body := renderErr(t, wrapped)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "user not found", body["message"])
}
