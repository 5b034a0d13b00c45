package service

import (
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dao"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/jwt"
	"github.com/vividblog/vividblog-api/library/log"
)

// mockConn satisfies the db wrapper interface on top of mtest's mock client.
type mockConn struct {
	db *mongoLib.Database
}

func (m mockConn) Close(ctx context.Context) error { return nil }

func (m mockConn) GetCol(name string) *mongoLib.Collection { return m.db.Collection(name) }

func (m mockConn) CurrentDB() *mongoLib.Database { return m.db }

func newMockService(mt *mtest.T) *Blog {
	tokener, err := jwt.New([]byte("test-secret"))
	require.NoError(mt, err)

	return New(log.Logger, dao.New(log.Logger, mockConn{db: mt.DB}), tokener, nil)
}

func errKind(t *testing.T, err error) apierr.Kind {
	t.Helper()
	apiErr := new(apierr.Error)
	require.True(t, errors.As(err, &apiErr), "expected an API error, got %v", err)
	return apiErr.Kind
}

// findCommand pops started command events until the named command shows up.
func findCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	for {
		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt, "no %q command was issued", name)
		if evt.CommandName == name {
			return evt.Command
		}
	}
}

func TestListUsersExcludesSoftDeleted(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find filter carries the isDeleted guard", func(mt *mtest.T) {
		svc := newMockService(mt)

		userDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Ann"},
			{Key: "email", Value: "ann@example.com"},
			{Key: "role", Value: model.RoleUser},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch,
				bson.D{{Key: "n", Value: int64(1)}}),
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch, userDoc),
		)

		users, totalPages, err := svc.ListUsers(context.Background(), "", 1)
		require.NoError(mt, err)
		require.Len(mt, users, 1)
		require.Equal(mt, 1, totalPages)

		filter := findCommand(mt, "find").Lookup("filter")
		require.True(mt, filter.Document().Lookup("isDeleted", "$ne").Boolean(),
			"listing must exclude soft-deleted users")
	})

	mt.Run("deleted listing asks for isDeleted true", func(mt *mtest.T) {
		svc := newMockService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch),
		)

		users, err := svc.ListDeletedUsers(context.Background())
		require.NoError(mt, err)
		require.Empty(mt, users)

		filter := findCommand(mt, "find").Lookup("filter")
		require.True(mt, filter.Document().Lookup("isDeleted").Boolean(),
			"restore listing must ask for soft-deleted users only")
	})
}

func TestAdminSelfAndPeerProtection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("self actions forbidden", func(mt *mtest.T) {
		svc := newMockService(mt)
		self := primitive.NewObjectID()

		_, err := svc.ToggleUserBlock(context.Background(), self, self)
		require.Equal(mt, apierr.KindForbidden, errKind(mt.T, err))

		err = svc.SoftDeleteUser(context.Background(), self, self)
		require.Equal(mt, apierr.KindForbidden, errKind(mt.T, err))

		err = svc.SetUserRole(context.Background(), self, self, model.RoleUser)
		require.Equal(mt, apierr.KindForbidden, errKind(mt.T, err))
	})

	mt.Run("admin target forbidden", func(mt *mtest.T) {
		svc := newMockService(mt)

		adminDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Root"},
			{Key: "email", Value: "root@example.com"},
			{Key: "role", Value: model.RoleAdmin},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch, adminDoc),
		)

		_, err := svc.ToggleUserBlock(context.Background(),
			primitive.NewObjectID(), primitive.NewObjectID())
		require.Equal(mt, apierr.KindForbidden, errKind(mt.T, err))
	})
}

func TestRegisterLoginCreateFlow(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("approved request from a regular user lands pending", func(mt *mtest.T) {
		svc := newMockService(mt)
		ctx := context.Background()

		// register: no account on the email yet
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)
		registered, err := svc.Register(ctx, "Ann", "ann@example.com", "s3cret")
		require.NoError(mt, err)
		require.Equal(mt, model.RoleUser, registered.User.Role)

		claims, err := svc.VerifyToken(registered.Token)
		require.NoError(mt, err)
		require.Equal(mt, model.RoleUser, claims.Role)

		// login against the stored hash
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		require.NoError(mt, err)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: registered.User.ID},
				{Key: "name", Value: "Ann"},
				{Key: "email", Value: "ann@example.com"},
				{Key: "password", Value: string(hash)},
				{Key: "role", Value: model.RoleUser},
			}),
		)
		logged, err := svc.Login(ctx, "ann@example.com", "s3cret")
		require.NoError(mt, err)
		require.Equal(mt, registered.User.ID, logged.User.ID)

		// a regular user asking for approved is queued as pending
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		post, err := svc.CreateBlog(ctx, &dto.CreateBlogRequest{
			Title:   "hello",
			Content: "world",
			UserID:  logged.User.ID.Hex(),
			Role:    model.RoleUser,
			Status:  model.StatusApproved,
		}, "")
		require.NoError(mt, err)
		require.Equal(mt, model.StatusPending, post.Status)
	})
}

func TestCreateTagCaseInsensitiveConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing lowercase name conflicts", func(mt *mtest.T) {
		svc := newMockService(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "blog.tags", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "name", Value: "go"},
			}),
		)

		_, err := svc.CreateTag(context.Background(), " Go ")
		require.Equal(mt, apierr.KindConflict, errKind(mt.T, err))

		// the duplicate check itself queries the normalized name
		filter := findCommand(mt, "find").Lookup("filter")
		require.Equal(mt, "go", filter.Document().Lookup("name").StringValue())
	})
}
