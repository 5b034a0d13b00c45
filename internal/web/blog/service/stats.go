package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
)

// MonthlyCount is one bucket of a per-month grouping.
type MonthlyCount struct {
	Month int `bson:"_id" json:"_id"`
	Count int `bson:"count" json:"count"`
}

// DashboardStats feeds the admin dashboard.
type DashboardStats struct {
	TotalUsers      int            `json:"totalUsers"`
	TotalPosts      int            `json:"totalPosts"`
	TotalComments   int            `json:"totalComments"`
	TotalViews      int            `json:"totalViews"`
	MonthlyBlogs    []MonthlyCount `json:"monthlyBlogs"`
	MonthlyComments []MonthlyCount `json:"monthlyComments"`
	MonthlyUsers    []MonthlyCount `json:"monthlyUsers"`
}

// DashboardStats counts every collection and groups documents per creation
// month. Views were never tracked, the total stays zero.
func (s *Blog) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	users, err := s.dao.GetUsersCol().CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "count users")
	}
	posts, err := s.dao.GetPostsCol().CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "count posts")
	}
	comments, err := s.dao.GetCommentsCol().CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	stats.TotalUsers = int(users)
	stats.TotalPosts = int(posts)
	stats.TotalComments = int(comments)

	if stats.MonthlyBlogs, err = s.monthlyCounts(ctx, s.dao.GetPostsCol()); err != nil {
		return nil, errors.Wrap(err, "monthly posts")
	}
	if stats.MonthlyComments, err = s.monthlyCounts(ctx, s.dao.GetCommentsCol()); err != nil {
		return nil, errors.Wrap(err, "monthly comments")
	}
	if stats.MonthlyUsers, err = s.monthlyCounts(ctx, s.dao.GetUsersCol()); err != nil {
		return nil, errors.Wrap(err, "monthly users")
	}

	return stats, nil
}

func (s *Blog) monthlyCounts(ctx context.Context, col *mongoLib.Collection) ([]MonthlyCount, error) {
	pipeline := mongoLib.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$month", Value: "$createdAt"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate monthly counts")
	}

	rows := []MonthlyCount{}
	if err = cur.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "load monthly counts")
	}

	return rows, nil
}
