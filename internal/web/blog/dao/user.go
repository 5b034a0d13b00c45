package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// GetUserByID loads a user regardless of deletion state. Callers that must
// hide soft-deleted users check IsDeleted themselves.
func (d *Blog) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(u); err != nil {
		return nil, errors.Wrapf(err, "find user %q", id.Hex())
	}

	return u, nil
}

// GetActiveUserByEmail finds a non-deleted user by email.
func (d *Blog) GetActiveUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{
			{Key: "email", Value: email},
			{Key: "isDeleted", Value: bson.D{{Key: "$ne", Value: true}}},
		}).
		Decode(u); err != nil {
		return nil, errors.Wrapf(err, "find user by email %q", email)
	}

	return u, nil
}

// GetUserByFacebookID finds the account bound to a facebook profile id.
func (d *Blog) GetUserByFacebookID(ctx context.Context, facebookID string) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "facebookId", Value: facebookID}}).
		Decode(u); err != nil {
		return nil, errors.Wrapf(err, "find user by facebook id %q", facebookID)
	}

	return u, nil
}
