package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

func fakeUser() *model.User {
	return &model.User{
		ID:        primitive.NewObjectID(),
		Name:      gofakeit.Name(),
		Email:     gofakeit.Email(),
		Password:  gofakeit.Password(true, true, true, false, false, 12),
		Provider:  model.ProviderLocal,
		Role:      model.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func fakePost(owner primitive.ObjectID) *model.Post {
	return &model.Post{
		ID:        primitive.NewObjectID(),
		Title:     gofakeit.Sentence(4),
		Content:   gofakeit.Paragraph(1, 3, 10, " "),
		Tags:      []string{"go", "testing"},
		Status:    model.StatusApproved,
		Likes:     []string{},
		Bookmarks: []string{},
		Comments:  []model.EmbeddedComment{},
		UserID:    owner,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestNewPostView(t *testing.T) {
	owner := fakeUser()
	post := fakePost(owner.ID)

	view, err := NewPostView(post, owner)
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// userId must be the expanded object, not the raw hex id
	ref, ok := decoded["userId"].(map[string]any)
	require.True(t, ok, "userId should be an object")
	require.Equal(t, owner.Name, ref["name"])
	require.NotContains(t, ref, "email")

	require.Equal(t, post.Title, decoded["title"])
}

func TestNewPostViewNilOwner(t *testing.T) {
	post := fakePost(primitive.NewObjectID())

	view, err := NewPostView(post, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Nil(t, decoded["userId"])
}

func TestNewCommentView(t *testing.T) {
	author := fakeUser()
	post := fakePost(author.ID)
	cm := &model.Comment{
		ID:        primitive.NewObjectID(),
		Content:   gofakeit.Sentence(6),
		Blog:      post.ID,
		User:      author.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	view, err := NewCommentView(cm, author, post)
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	user, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, author.Email, user["email"])

	blog, ok := decoded["blog"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, post.Title, blog["title"])
	require.Nil(t, decoded["parentId"])
}

func TestUserNeverLeaksPassword(t *testing.T) {
	raw, err := json.Marshal(fakeUser())
	require.NoError(t, err)
	require.NotContains(t, string(raw), "password")
}
