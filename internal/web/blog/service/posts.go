package service

import (
	"context"
	"strings"
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

const postsPageSize = 10

// ListPosts pages through the token-gated post listing: case-insensitive
// title/content search, optional exact status (lowercased), newest first.
func (s *Blog) ListPosts(ctx context.Context, search string, page int, status string) (
	posts []*dto.PostView, totalPages int, err error) {
	if page < 1 {
		page = 1
	}

	query := bson.D{}
	if search != "" {
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: primitive.Regex{Pattern: search, Options: "i"}}},
			bson.D{{Key: "content", Value: primitive.Regex{Pattern: search, Options: "i"}}},
		}})
	}
	if status != "" {
		query = append(query, bson.E{Key: "status", Value: strings.ToLower(status)})
	}

	total, err := s.dao.GetPostsCol().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	cur, err := s.dao.GetPostsCol().Find(ctx, query,
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(int64((page-1)*postsPageSize)).
			SetLimit(postsPageSize),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "find posts")
	}

	docs := []*model.Post{}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, 0, errors.Wrap(err, "load posts")
	}

	views, err := s.postViewsWithEmail(ctx, docs)
	if err != nil {
		return nil, 0, err
	}

	return views, int((total + postsPageSize - 1) / postsPageSize), nil
}

// postViewsWithEmail populates owner name and email, the wider populate used
// by the token-gated listing.
func (s *Blog) postViewsWithEmail(ctx context.Context, posts []*model.Post) ([]*dto.PostView, error) {
	owners, err := s.ownerMap(ctx, posts)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.PostView, 0, len(posts))
	for _, p := range posts {
		view, err := dto.NewPostView(p, nil)
		if err != nil {
			return nil, err
		}
		if owner := owners[p.UserID]; owner != nil {
			view.UserID = &dto.UserRef{ID: owner.ID, Name: owner.Name, Email: owner.Email}
		}
		views = append(views, view)
	}

	return views, nil
}

// CreatePost stores a post through the token-gated route: the author comes
// from the token and the status is always pending.
func (s *Blog) CreatePost(ctx context.Context, authorID primitive.ObjectID,
	req *dto.CreatePostRequest) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apierr.New(apierr.KindValidation, "title and content are required")
	}

	image := req.Image
	if image == "" {
		image = randomCoverImage()
	}

	now := time.Now()
	post := &model.Post{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Image:     image,
		Tags:      CollectPostTags(req.Tags),
		Status:    model.StatusPending,
		Likes:     []string{},
		Bookmarks: []string{},
		Comments:  []model.EmbeddedComment{},
		UserID:    authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.dao.GetPostsCol().InsertOne(ctx, post); err != nil {
		return nil, errors.Wrap(err, "insert post")
	}

	return post, nil
}

// GetPost loads one post with name+email populated.
func (s *Blog) GetPost(ctx context.Context, id primitive.ObjectID) (*dto.PostView, error) {
	post, err := s.dao.GetPostByID(ctx, id)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	views, err := s.postViewsWithEmail(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// SetPostStatus updates a post's status for its author or an admin. The
// value is lowercased but otherwise free-form on this route.
func (s *Blog) SetPostStatus(ctx context.Context, actorID primitive.ObjectID,
	actorRole string, postID primitive.ObjectID, status string) (*model.Post, error) {
	post, err := s.dao.GetPostByID(ctx, postID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	if actorRole != model.RoleAdmin && post.UserID != actorID {
		return nil, apierr.New(apierr.KindForbidden, "no permission to update status")
	}

	post.Status = strings.ToLower(status)
	post.UpdatedAt = time.Now()
	if err := s.dao.SavePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost hard-deletes through the token-gated route.
func (s *Blog) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteBlog(ctx, id)
}

// ListPostsByStatus is the admin moderation view, sorted by last update.
// The approved view is widened to include drafts.
func (s *Blog) ListPostsByStatus(ctx context.Context, status string) ([]*dto.PostView, error) {
	return s.findBlogViews(ctx,
		bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: WidenStatusFilter(status)}}}},
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

// SetPostStatusFixed backs the admin approve/reject/draft endpoints, each of
// which writes exactly one status. Returns nil when the post is missing, the
// historical contract of these routes.
func (s *Blog) SetPostStatusFixed(ctx context.Context, id primitive.ObjectID, status string) (*model.Post, error) {
	res, err := s.dao.GetPostsCol().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return nil, errors.Wrap(err, "update post status")
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}

	return s.dao.GetPostByID(ctx, id)
}

// AdminDeletePost removes the post, reporting success whether or not it
// existed (historical contract).
func (s *Blog) AdminDeletePost(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.dao.GetPostsCol().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return errors.Wrap(err, "delete post")
	}

	return nil
}
