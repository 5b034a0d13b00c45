package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/db/mongo"
)

const usersPageSize = 5

// notDeleted matches documents that are not soft-deleted, including legacy
// ones written before the flag existed.
func notDeleted() bson.E {
	return bson.E{Key: "isDeleted", Value: bson.D{{Key: "$ne", Value: true}}}
}

// ListUsers pages through non-deleted users, newest first, optionally
// filtered by a case-insensitive name/email substring.
func (s *Blog) ListUsers(ctx context.Context, search string, page int) (
	users []*model.User, totalPages int, err error) {
	if page < 1 {
		page = 1
	}

	query := bson.D{
		notDeleted(),
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: primitive.Regex{Pattern: search, Options: "i"}}},
			bson.D{{Key: "email", Value: primitive.Regex{Pattern: search, Options: "i"}}},
		}},
	}

	total, err := s.dao.GetUsersCol().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	cur, err := s.dao.GetUsersCol().Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(int64((page-1)*usersPageSize)).
			SetLimit(usersPageSize),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "find users")
	}

	users = []*model.User{}
	if err = cur.All(ctx, &users); err != nil {
		return nil, 0, errors.Wrap(err, "load users")
	}

	return users, int((total + usersPageSize - 1) / usersPageSize), nil
}

// ListDeletedUsers returns the restore-eligible accounts.
func (s *Blog) ListDeletedUsers(ctx context.Context) ([]*model.User, error) {
	cur, err := s.dao.GetUsersCol().Find(ctx,
		bson.D{{Key: "isDeleted", Value: true}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find deleted users")
	}

	users := []*model.User{}
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "load deleted users")
	}

	return users, nil
}

// GetActiveUser loads one non-deleted user.
func (s *Blog) GetActiveUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u := new(model.User)
	if err := s.dao.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}, notDeleted()}).
		Decode(u); err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "user not found")
		}
		return nil, errors.Wrapf(err, "find user %q", id.Hex())
	}

	return u, nil
}

// UpdateOwnUser lets a user edit their own name/email. Editing anyone else
// is forbidden regardless of role.
func (s *Blog) UpdateOwnUser(ctx context.Context, actorID, targetID primitive.ObjectID,
	name, email string) (*model.User, error) {
	if actorID != targetID {
		return nil, apierr.New(apierr.KindForbidden, "no permission to edit this profile")
	}

	user, err := s.GetActiveUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	user.UpdatedAt = time.Now()

	if _, err := s.dao.GetUsersCol().
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}

	return user, nil
}

// SetAvatar stores the uploaded avatar path on the current user.
func (s *Blog) SetAvatar(ctx context.Context, userID primitive.ObjectID, avatar string) (*model.User, error) {
	user, err := s.GetActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = avatar
	user.UpdatedAt = time.Now()
	if _, err := s.dao.GetUsersCol().
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}

	return user, nil
}

// guardAdminTarget enforces the admin self/peer protection shared by the
// block, delete and role endpoints.
func (s *Blog) guardAdminTarget(ctx context.Context, actorID, targetID primitive.ObjectID,
	selfMsg string) (*model.User, error) {
	if actorID == targetID {
		return nil, apierr.New(apierr.KindForbidden, selfMsg)
	}

	user, err := s.GetActiveUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() {
		return nil, apierr.New(apierr.KindForbidden, "cannot modify another admin account")
	}

	return user, nil
}

// ToggleUserBlock flips the target's blocked flag. Reports the new state.
func (s *Blog) ToggleUserBlock(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, error) {
	user, err := s.guardAdminTarget(ctx, actorID, targetID, "cannot block your own account")
	if err != nil {
		return false, err
	}

	user.IsBlocked = !user.IsBlocked
	user.UpdatedAt = time.Now()
	if _, err := s.dao.GetUsersCol().
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user); err != nil {
		return false, errors.Wrap(err, "save user")
	}

	s.logger.Info("toggled user block",
		zap.String("user", user.ID.Hex()),
		zap.Bool("blocked", user.IsBlocked))
	return user.IsBlocked, nil
}

// SoftDeleteUser marks the target deleted. Documents are never removed.
func (s *Blog) SoftDeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	user, err := s.guardAdminTarget(ctx, actorID, targetID, "cannot delete your own account")
	if err != nil {
		return err
	}

	if _, err := s.dao.GetUsersCol().UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()},
	}); err != nil {
		return errors.Wrap(err, "soft delete user")
	}

	s.logger.Info("soft deleted user", zap.String("user", user.ID.Hex()))
	return nil
}

// RestoreUser undoes a soft delete. Only deleted users match.
func (s *Blog) RestoreUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.dao.GetUsersCol().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "isDeleted", Value: true}},
		bson.M{"$set": bson.M{"isDeleted": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return errors.Wrap(err, "restore user")
	}
	if res.MatchedCount == 0 {
		return apierr.New(apierr.KindNotFound, "deleted user not found")
	}

	return nil
}

// UpdateUserInfo is the admin edit of someone else's name/email.
func (s *Blog) UpdateUserInfo(ctx context.Context, actorID, targetID primitive.ObjectID,
	name, email string) error {
	if actorID == targetID {
		return apierr.New(apierr.KindForbidden, "cannot edit your own profile here")
	}
	if name == "" && email == "" {
		return apierr.New(apierr.KindValidation, "nothing to update")
	}

	user, err := s.GetActiveUser(ctx, targetID)
	if err != nil {
		return err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	user.UpdatedAt = time.Now()

	if _, err := s.dao.GetUsersCol().
		ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID}}, user); err != nil {
		return errors.Wrap(err, "save user")
	}

	return nil
}

// SetUserRole switches the target between user and admin.
func (s *Blog) SetUserRole(ctx context.Context, actorID, targetID primitive.ObjectID, role string) error {
	if actorID == targetID {
		return apierr.New(apierr.KindForbidden, "cannot change your own role")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return apierr.New(apierr.KindValidation, "invalid role")
	}

	user, err := s.GetActiveUser(ctx, targetID)
	if err != nil {
		return err
	}

	if _, err := s.dao.GetUsersCol().UpdateByID(ctx, user.ID, bson.M{
		"$set": bson.M{"role": role, "updatedAt": time.Now()},
	}); err != nil {
		return errors.Wrap(err, "update role")
	}

	s.logger.Info("updated user role",
		zap.String("user", user.ID.Hex()),
		zap.String("role", role))
	return nil
}
