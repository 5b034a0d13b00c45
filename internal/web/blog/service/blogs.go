package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/db/mongo"
)

const relatedBlogsLimit = 5

// randomCoverImage picks a placeholder cover for posts created without one.
func randomCoverImage() string {
	return fmt.Sprintf("https://picsum.photos/600/400?random=%d", rand.Intn(1000000))
}

// ownerMap loads the owners of the given posts, keyed by user id. Missing
// owners are simply absent from the map, mirroring an empty populate.
func (s *Blog) ownerMap(ctx context.Context, posts []*model.Post) (map[primitive.ObjectID]*model.User, error) {
	ids := make([]primitive.ObjectID, 0, len(posts))
	seen := map[primitive.ObjectID]struct{}{}
	for _, p := range posts {
		if p.UserID.IsZero() {
			continue
		}
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	owners := map[primitive.ObjectID]*model.User{}
	if len(ids) == 0 {
		return owners, nil
	}

	cur, err := s.dao.GetUsersCol().Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, errors.Wrap(err, "find post owners")
	}

	users := []*model.User{}
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "load post owners")
	}
	for _, u := range users {
		owners[u.ID] = u
	}

	return owners, nil
}

func (s *Blog) postViews(ctx context.Context, posts []*model.Post) ([]*dto.PostView, error) {
	owners, err := s.ownerMap(ctx, posts)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.PostView, 0, len(posts))
	for _, p := range posts {
		view, err := dto.NewPostView(p, owners[p.UserID])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// CreateBlog stores a new post through the public blog route. The stored
// status comes from the moderation policy over the body-supplied role.
func (s *Blog) CreateBlog(ctx context.Context, req *dto.CreateBlogRequest, uploadedImage string) (*model.Post, error) {
	if req.Title == "" || req.Content == "" || req.UserID == "" {
		return nil, apierr.New(apierr.KindValidation, "title, content and user id are required")
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, apierr.New(apierr.KindValidation, "invalid user id")
	}

	image := uploadedImage
	if image == "" {
		image = req.Image
	}
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
		Category:  req.Category,
		Status:    EffectiveStatus(req.Role, req.Status),
		Likes:     []string{},
		Bookmarks: []string{},
		Comments:  []model.EmbeddedComment{},
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.dao.GetPostsCol().InsertOne(ctx, post); err != nil {
		return nil, errors.Wrap(err, "insert post")
	}

	s.logger.Info("blog created",
		zap.String("post", post.ID.Hex()),
		zap.String("status", post.Status))
	return post, nil
}

// blogListQuery builds the public feed filter. Without an explicit status
// the feed shows approved posts only; all filters are exact matches.
func blogListQuery(tag, status, category string) bson.D {
	if status == "" {
		status = model.StatusApproved
	}

	query := bson.D{{Key: "status", Value: status}}
	if tag != "" {
		query = append(query, bson.E{Key: "tags", Value: bson.D{{Key: "$in", Value: bson.A{tag}}}})
	}
	if category != "" {
		query = append(query, bson.E{Key: "category", Value: category})
	}

	return query
}

// ListBlogs lists posts for the public feed.
func (s *Blog) ListBlogs(ctx context.Context, tag, status, category string) ([]*dto.PostView, error) {
	return s.findBlogViews(ctx, blogListQuery(tag, status, category),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// ListBlogsByUser returns every post of one owner in all statuses.
func (s *Blog) ListBlogsByUser(ctx context.Context, userID primitive.ObjectID) ([]*dto.PostView, error) {
	return s.findBlogViews(ctx,
		bson.D{{Key: "userId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Blog) findBlogViews(ctx context.Context, query bson.D, opts ...*options.FindOptions) ([]*dto.PostView, error) {
	cur, err := s.dao.GetPostsCol().Find(ctx, query, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}

	posts := []*model.Post{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "load posts")
	}

	return s.postViews(ctx, posts)
}

// GetBlog loads one post with its owner populated.
func (s *Blog) GetBlog(ctx context.Context, id primitive.ObjectID) (*dto.PostView, error) {
	post, err := s.dao.GetPostByID(ctx, id)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	views, err := s.postViews(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// RelatedBlogs returns up to five other posts sharing any of the post's
// stored tags.
func (s *Blog) RelatedBlogs(ctx context.Context, id primitive.ObjectID) ([]*dto.PostView, error) {
	post, err := s.dao.GetPostByID(ctx, id)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	if len(post.Tags) == 0 {
		return []*dto.PostView{}, nil
	}

	return s.findBlogViews(ctx, bson.D{
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: post.ID}}},
		{Key: "tags", Value: bson.D{{Key: "$in", Value: post.Tags}}},
	}, options.Find().SetLimit(relatedBlogsLimit))
}

// UpdateBlog applies a partial update. Empty fields keep the stored value;
// a scalar tags value is comma-split without JSON parsing on this route.
func (s *Blog) UpdateBlog(ctx context.Context, id primitive.ObjectID,
	req *dto.UpdateBlogRequest, uploadedImage string) (*model.Post, error) {
	post, err := s.dao.GetPostByID(ctx, id)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if !req.Tags.IsZero() {
		post.Tags = CollectPostTags(req.Tags)
	}
	if req.Category != "" {
		post.Category = req.Category
	}
	if req.Status != "" {
		post.Status = req.Status
	}
	if uploadedImage != "" {
		post.Image = uploadedImage
	}
	post.UpdatedAt = time.Now()

	if err := s.dao.SavePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeleteBlog removes the post document for good.
func (s *Blog) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.dao.GetPostsCol().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if res.DeletedCount == 0 {
		return apierr.New(apierr.KindNotFound, "post not found")
	}

	return nil
}

// ModerateBlog sets the post to approved or rejected via the public
// moderation route.
func (s *Blog) ModerateBlog(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != model.StatusApproved && status != model.StatusRejected {
		return apierr.New(apierr.KindValidation, "invalid status")
	}

	res, err := s.dao.GetPostsCol().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return errors.Wrap(err, "update post status")
	}
	if res.MatchedCount == 0 {
		return apierr.New(apierr.KindNotFound, "post not found")
	}

	return nil
}

// AddEmbeddedComment appends a legacy in-document comment.
func (s *Blog) AddEmbeddedComment(ctx context.Context, blogID primitive.ObjectID,
	content, author string) (*model.EmbeddedComment, error) {
	if content == "" || author == "" {
		return nil, apierr.New(apierr.KindValidation, "content and author are required")
	}

	post, err := s.dao.GetPostByID(ctx, blogID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	comment := model.EmbeddedComment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Author:    author,
		CreatedAt: time.Now(),
	}
	post.Comments = append(post.Comments, comment)
	post.UpdatedAt = time.Now()

	if err := s.dao.SavePost(ctx, post); err != nil {
		return nil, err
	}

	return &comment, nil
}

// RemoveEmbeddedComment deletes one legacy in-document comment.
func (s *Blog) RemoveEmbeddedComment(ctx context.Context, blogID, commentID primitive.ObjectID) error {
	post, err := s.dao.GetPostByID(ctx, blogID)
	if err != nil {
		if mongo.NotFound(err) {
			return apierr.New(apierr.KindNotFound, "post not found")
		}
		return errors.Wrap(err, "get post")
	}

	idx := -1
	for i, cm := range post.Comments {
		if cm.ID == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apierr.New(apierr.KindNotFound, "comment not found")
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
	post.UpdatedAt = time.Now()

	return s.dao.SavePost(ctx, post)
}

// ToggleLike flips the user's membership in the post's likes. The whole
// document is read, modified and written back; concurrent toggles are last
// write wins.
func (s *Blog) ToggleLike(ctx context.Context, blogID primitive.ObjectID, userID string) (*model.Post, error) {
	return s.toggleMembership(ctx, blogID, userID, func(p *model.Post) *[]string {
		return &p.Likes
	})
}

// ToggleBookmark flips the user's membership in the post's bookmarks.
func (s *Blog) ToggleBookmark(ctx context.Context, blogID primitive.ObjectID, userID string) (*model.Post, error) {
	return s.toggleMembership(ctx, blogID, userID, func(p *model.Post) *[]string {
		return &p.Bookmarks
	})
}

func (s *Blog) toggleMembership(ctx context.Context, blogID primitive.ObjectID,
	userID string, field func(*model.Post) *[]string) (*model.Post, error) {
	post, err := s.dao.GetPostByID(ctx, blogID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "post not found")
		}
		return nil, errors.Wrap(err, "get post")
	}

	members := field(post)
	idx := -1
	for i, m := range *members {
		if m == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		*members = append((*members)[:idx], (*members)[idx+1:]...)
	} else {
		*members = append(*members, userID)
	}
	post.UpdatedAt = time.Now()

	if err := s.dao.SavePost(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}
