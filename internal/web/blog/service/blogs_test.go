package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

func TestBlogListQuery(t *testing.T) {
	t.Run("default status approved", func(t *testing.T) {
		require.Equal(t,
			bson.D{{Key: "status", Value: model.StatusApproved}},
			blogListQuery("", "", ""))
	})

	t.Run("explicit status exact", func(t *testing.T) {
		require.Equal(t,
			bson.D{{Key: "status", Value: "pending"}},
			blogListQuery("", "pending", ""))
	})

	t.Run("tag filter", func(t *testing.T) {
		require.Equal(t, bson.D{
			{Key: "status", Value: model.StatusApproved},
			{Key: "tags", Value: bson.D{{Key: "$in", Value: bson.A{"go"}}}},
		}, blogListQuery("go", "", ""))
	})

	t.Run("category filter", func(t *testing.T) {
		require.Equal(t, bson.D{
			{Key: "status", Value: model.StatusApproved},
			{Key: "category", Value: "tech"},
		}, blogListQuery("", "", "tech"))
	})

	t.Run("all filters combined", func(t *testing.T) {
		require.Equal(t, bson.D{
			{Key: "status", Value: "draft"},
			{Key: "tags", Value: bson.D{{Key: "$in", Value: bson.A{"go"}}}},
			{Key: "category", Value: "tech"},
		}, blogListQuery("go", "draft", "tech"))
	})
}
