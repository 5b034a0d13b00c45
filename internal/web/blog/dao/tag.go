package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// GetTagByID loads one tag document.
func (d *Blog) GetTagByID(ctx context.Context, id primitive.ObjectID) (*model.Tag, error) {
	tag := new(model.Tag)
	if err := d.GetTagsCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(tag); err != nil {
		return nil, errors.Wrapf(err, "find tag %q", id.Hex())
	}

	return tag, nil
}

// GetTagByName finds a tag by its stored (normalized) name.
func (d *Blog) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	tag := new(model.Tag)
	if err := d.GetTagsCol().
		FindOne(ctx, bson.D{{Key: "name", Value: name}}).
		Decode(tag); err != nil {
		return nil, errors.Wrapf(err, "find tag by name %q", name)
	}

	return tag, nil
}
