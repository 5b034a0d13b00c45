package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// GetPostByID loads one post document.
func (d *Blog) GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	p := new(model.Post)
	if err := d.GetPostsCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(p); err != nil {
		return nil, errors.Wrapf(err, "find post %q", id.Hex())
	}

	return p, nil
}

// SavePost overwrites the whole post document, refreshing updatedAt the way
// the document was always written.
func (d *Blog) SavePost(ctx context.Context, p *model.Post) error {
	if _, err := d.GetPostsCol().
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, p); err != nil {
		return errors.Wrapf(err, "save post %q", p.ID.Hex())
	}

	return nil
}
