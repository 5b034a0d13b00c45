package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// GetCommentByID loads one comment document.
func (d *Blog) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	cm := new(model.Comment)
	if err := d.GetCommentsCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(cm); err != nil {
		return nil, errors.Wrapf(err, "find comment %q", id.Hex())
	}

	return cm, nil
}
