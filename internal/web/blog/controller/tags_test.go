package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/vividblog/vividblog-api/internal/web/blog/dao"
	"github.com/vividblog/vividblog-api/internal/web/blog/service"
	"github.com/vividblog/vividblog-api/library/config"
	"github.com/vividblog/vividblog-api/library/jwt"
	"github.com/vividblog/vividblog-api/library/log"
	"github.com/vividblog/vividblog-api/library/storage"
)

// mockConn satisfies the db wrapper interface on top of mtest's mock client.
type mockConn struct {
	db *mongoLib.Database
}

func (m mockConn) Close(ctx context.Context) error { return nil }

func (m mockConn) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m mockConn) CurrentDB() *mongoLib.Database { return m.db }

func newMockController(mt *mtest.T) *Blog {
	tokener, err := jwt.New([]byte("test-secret"))
	require.NoError(mt, err)

	uploads, err := storage.NewDisk(mt.TempDir(), "/uploads")
	require.NoError(mt, err)

	svc := service.New(log.Logger,
		dao.New(log.Logger, mockConn{db: mt.DB}), tokener, nil)
	return New(log.Logger, svc, &config.Config{}, uploads)
}

func invoke(ctl *Blog, handler func(*gin.Context), target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	handler(c)
	return w
}

// The curated listing and the monthly aggregation answer with the bare
// object, without the success envelope the other routes carry.
func TestListTagsBareShape(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("tags only", func(mt *mtest.T) {
		ctl := newMockController(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.tags", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "go"},
			}),
		)

		w := invoke(ctl, ctl.ListTags, "/api/tags")
		require.Equal(mt, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(mt, body, "tags")
		require.NotContains(mt, body, "success")
	})
}

func TestMonthlyTagsBareShape(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("monthlyTags only", func(mt *mtest.T) {
		ctl := newMockController(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.posts", mtest.FirstBatch),
		)

		w := invoke(ctl, ctl.MonthlyTags, "/api/tags/monthly")
		require.Equal(mt, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotContains(mt, body, "success")

		months, ok := body["monthlyTags"].([]any)
		require.True(mt, ok)
		require.Len(mt, months, 12)
	})
}
