package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/db/mongo"
)

// CreateComment stores a root comment on a blog. The author always comes
// from the token.
func (s *Blog) CreateComment(ctx context.Context, userID primitive.ObjectID,
	content string, blogID string) (*model.Comment, error) {
	if content == "" || blogID == "" {
		return nil, apierr.New(apierr.KindValidation, "content and blog id are required")
	}

	bid, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, apierr.New(apierr.KindValidation, "invalid blog id")
	}

	if _, err := s.dao.GetPostByID(ctx, bid); err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Blog:      bid,
		User:      userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.dao.GetCommentsCol().InsertOne(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}

	return comment, nil
}

// ReplyComment creates a reply under a parent comment. The reply always
// lands on the parent's blog, which keeps every thread on a single post.
func (s *Blog) ReplyComment(ctx context.Context, userID, parentID primitive.ObjectID,
	content string) (*model.Comment, error) {
	parent, err := s.dao.GetCommentByID(ctx, parentID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "parent comment not found")
		}
		return nil, errors.Wrap(err, "get parent comment")
	}

	now := time.Now()
	reply := &model.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Blog:      parent.Blog,
		User:      userID,
		ParentID:  &parent.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.dao.GetCommentsCol().InsertOne(ctx, reply); err != nil {
		return nil, errors.Wrap(err, "insert reply")
	}

	return reply, nil
}

// ListAllComments is the admin view: every comment with its author and blog
// populated, newest first.
func (s *Blog) ListAllComments(ctx context.Context) ([]*dto.CommentView, error) {
	comments, err := s.findComments(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	return s.commentViews(ctx, comments, true)
}

// BlogComments loads a blog's thread split into root comments and replies,
// both oldest first with authors populated.
func (s *Blog) BlogComments(ctx context.Context, blogID primitive.ObjectID) (
	roots, replies []*dto.CommentView, err error) {
	comments, err := s.findComments(ctx,
		bson.D{{Key: "blog", Value: blogID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, nil, err
	}

	views, err := s.commentViews(ctx, comments, false)
	if err != nil {
		return nil, nil, err
	}

	roots = []*dto.CommentView{}
	replies = []*dto.CommentView{}
	for _, v := range views {
		if v.ParentID == nil {
			roots = append(roots, v)
		} else {
			replies = append(replies, v)
		}
	}

	return roots, replies, nil
}

// DeleteComment removes a comment for its owner or an admin.
func (s *Blog) DeleteComment(ctx context.Context, actorID primitive.ObjectID,
	actorRole string, id primitive.ObjectID) error {
	comment, err := s.dao.GetCommentByID(ctx, id)
	if err != nil {
		if mongo.NotFound(err) {
			return apierr.New(apierr.KindNotFound, "comment not found")
		}
		return errors.Wrap(err, "get comment")
	}

	if comment.User != actorID && actorRole != model.RoleAdmin {
		return apierr.New(apierr.KindForbidden, "no permission to delete this comment")
	}

	if _, err := s.dao.GetCommentsCol().
		DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return errors.Wrap(err, "delete comment")
	}

	return nil
}

func (s *Blog) findComments(ctx context.Context, query bson.D, opts ...*options.FindOptions) ([]*model.Comment, error) {
	cur, err := s.dao.GetCommentsCol().Find(ctx, query, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}

	comments := []*model.Comment{}
	if err = cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "load comments")
	}

	return comments, nil
}

// commentViews populates comment authors, and blogs too when withBlogs is
// set. Missing references stay nil, as an empty populate would.
func (s *Blog) commentViews(ctx context.Context, comments []*model.Comment, withBlogs bool) ([]*dto.CommentView, error) {
	userIDs := map[primitive.ObjectID]struct{}{}
	blogIDs := map[primitive.ObjectID]struct{}{}
	for _, cm := range comments {
		userIDs[cm.User] = struct{}{}
		blogIDs[cm.Blog] = struct{}{}
	}

	users := map[primitive.ObjectID]*model.User{}
	if len(userIDs) > 0 {
		ids := make([]primitive.ObjectID, 0, len(userIDs))
		for id := range userIDs {
			ids = append(ids, id)
		}
		cur, err := s.dao.GetUsersCol().Find(ctx,
			bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
		if err != nil {
			return nil, errors.Wrap(err, "find comment authors")
		}
		docs := []*model.User{}
		if err = cur.All(ctx, &docs); err != nil {
			return nil, errors.Wrap(err, "load comment authors")
		}
		for _, u := range docs {
			users[u.ID] = u
		}
	}

	blogs := map[primitive.ObjectID]*model.Post{}
	if withBlogs && len(blogIDs) > 0 {
		ids := make([]primitive.ObjectID, 0, len(blogIDs))
		for id := range blogIDs {
			ids = append(ids, id)
		}
		cur, err := s.dao.GetPostsCol().Find(ctx,
			bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
		if err != nil {
			return nil, errors.Wrap(err, "find comment blogs")
		}
		docs := []*model.Post{}
		if err = cur.All(ctx, &docs); err != nil {
			return nil, errors.Wrap(err, "load comment blogs")
		}
		for _, p := range docs {
			blogs[p.ID] = p
		}
	}

	views := make([]*dto.CommentView, 0, len(comments))
	for _, cm := range comments {
		view, err := dto.NewCommentView(cm, users[cm.User], blogs[cm.Blog])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}
