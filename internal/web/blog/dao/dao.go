// Package dao contains all the data access object used in the application.
package dao

import (
	glog "github.com/Laisky/go-utils/v6/log"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/vividblog/vividblog-api/library/db/mongo"
)

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetUsersCol get users collection
func (d *Blog) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol("users")
}

// GetPostsCol get posts collection
func (d *Blog) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol("posts")
}

// GetCommentsCol get comments collection
func (d *Blog) GetCommentsCol() *mongoLib.Collection {
	return d.db.GetCol("comments")
}

// GetTagsCol get tags collection
func (d *Blog) GetTagsCol() *mongoLib.Collection {
	return d.db.GetCol("tags")
}
