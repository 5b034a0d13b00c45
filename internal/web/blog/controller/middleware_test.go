package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vividblog/vividblog-api/internal/web/blog/dao"
	"github.com/vividblog/vividblog-api/internal/web/blog/service"
	"github.com/vividblog/vividblog-api/library/config"
	"github.com/vividblog/vividblog-api/library/jwt"
	"github.com/vividblog/vividblog-api/library/log"
	"github.com/vividblog/vividblog-api/library/storage"
)

func testEngine(t *testing.T) (*gin.Engine, *jwt.JWT) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokener, err := jwt.New([]byte("test-secret"))
	require.NoError(t, err)

	uploads, err := storage.NewDisk(t.TempDir(), "/uploads")
	require.NoError(t, err)

	svc := service.New(log.Logger, dao.New(log.Logger, nil), tokener, nil)
	ctl := New(log.Logger, svc, &config.Config{}, uploads)

	engine := gin.New()
	ctl.RegisterRoutes(engine)
	return engine, tokener
}

func doReq(engine *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredMissingToken(t *testing.T) {
	engine, _ := testEngine(t)

	w := doReq(engine, http.MethodGet, "/api/posts", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredBadToken(t *testing.T) {
	engine, _ := testEngine(t)

	w := doReq(engine, http.MethodGet, "/api/posts", "not-a-jwt")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRequiredWrongSecret(t *testing.T) {
	engine, _ := testEngine(t)

	other, err := jwt.New([]byte("another-secret"))
	require.NoError(t, err)
	token, err := other.Sign("64f000000000000000000001", "user", jwt.ExpiresLogin)
	require.NoError(t, err)

	w := doReq(engine, http.MethodGet, "/api/posts", token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenEcho(t *testing.T) {
	engine, tokener := testEngine(t)

	token, err := tokener.Sign("64f000000000000000000001", "admin", jwt.ExpiresLogin)
	require.NoError(t, err)

	w := doReq(engine, http.MethodGet, "/api/test-token", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "64f000000000000000000001", body["userId"])
	require.Equal(t, "admin", body["role"])
}

func TestTokenEchoMissing(t *testing.T) {
	engine, _ := testEngine(t)

	w := doReq(engine, http.MethodGet, "/api/test-token", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthProbe(t *testing.T) {
	engine, _ := testEngine(t)

	w := doReq(engine, http.MethodGet, "/api/test", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidObjectIDIsRejected(t *testing.T) {
	engine, _ := testEngine(t)

	w := doReq(engine, http.MethodGet, "/api/blogs/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
