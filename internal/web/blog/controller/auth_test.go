package controller

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/internal/web/blog/service"
)

func TestFrontendLoginTarget(t *testing.T) {
	user := &model.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ann",
		Email: "ann@example.com",
		Role:  model.RoleUser,
	}
	target := frontendLoginTarget("https://blog.example.com/login",
		&service.AuthResult{User: user, Token: "tok123"})

	parsed, err := url.Parse(target)
	require.NoError(t, err)
	require.Equal(t, "/login", parsed.Path)

	q := parsed.Query()
	require.Equal(t, "tok123", q.Get("token"))
	require.Contains(t, q.Get("user"), user.ID.Hex())
	require.Contains(t, q.Get("user"), "ann@example.com")
}
