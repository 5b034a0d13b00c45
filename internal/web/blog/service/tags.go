package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/db/mongo"
)

// allPostTagLists loads only the tags field of every post.
func (s *Blog) allPostTagLists(ctx context.Context) ([][]string, error) {
	cur, err := s.dao.GetPostsCol().Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "tags", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find post tags")
	}

	var docs []struct {
		Tags []string `bson:"tags"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "load post tags")
	}

	lists := make([][]string, 0, len(docs))
	for _, d := range docs {
		lists = append(lists, d.Tags)
	}

	return lists, nil
}

// UniqueTags returns every distinct normalized tag in use across posts,
// whether or not it still exists in the tags collection.
func (s *Blog) UniqueTags(ctx context.Context) ([]string, error) {
	lists, err := s.allPostTagLists(ctx)
	if err != nil {
		return nil, err
	}

	return UniqueNormalizedTags(lists), nil
}

// UniqueTagsFromBlogs is the legacy case-preserving variant: quotes are
// stripped but nothing is lowercased.
func (s *Blog) UniqueTagsFromBlogs(ctx context.Context) ([]string, error) {
	lists, err := s.allPostTagLists(ctx)
	if err != nil {
		return nil, err
	}

	return UniqueQuoteStrippedTags(lists), nil
}

// AvailableTagsForFilter intersects the normalized in-use tags with the
// names still present in the tags collection, so the filter dropdown never
// offers a tag that was deleted from the curated set.
func (s *Blog) AvailableTagsForFilter(ctx context.Context) ([]string, error) {
	inUse, err := s.UniqueTags(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := s.dao.GetTagsCol().Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find tags")
	}
	curated := []*model.Tag{}
	if err = cur.All(ctx, &curated); err != nil {
		return nil, errors.Wrap(err, "load tags")
	}

	curatedSet := make(map[string]struct{}, len(curated))
	for _, t := range curated {
		curatedSet[strings.ToLower(strings.TrimSpace(t.Name))] = struct{}{}
	}

	out := []string{}
	for _, tag := range inUse {
		if _, ok := curatedSet[tag]; ok {
			out = append(out, tag)
		}
	}

	return out, nil
}

// ListTags searches the curated tags collection, newest first.
func (s *Blog) ListTags(ctx context.Context, search string) ([]*model.Tag, error) {
	cur, err := s.dao.GetTagsCol().Find(ctx,
		bson.D{{Key: "name", Value: primitive.Regex{Pattern: search, Options: "i"}}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find tags")
	}

	tags := []*model.Tag{}
	if err = cur.All(ctx, &tags); err != nil {
		return nil, errors.Wrap(err, "load tags")
	}

	return tags, nil
}

// CreateTag stores a curated tag. Names are trimmed and lowercased before
// the duplicate check, which makes uniqueness case-insensitive.
func (s *Blog) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, apierr.New(apierr.KindValidation, "tag name must not be empty")
	}

	if _, err := s.dao.GetTagByName(ctx, name); err == nil {
		return nil, apierr.New(apierr.KindConflict, "tag already exists")
	} else if !mongo.NotFound(err) {
		return nil, errors.Wrap(err, "check tag")
	}

	now := time.Now()
	tag := &model.Tag{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.dao.GetTagsCol().InsertOne(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "insert tag")
	}

	return tag, nil
}

// UpdateTag renames a curated tag, rejecting a name already taken by any
// other tag.
func (s *Blog) UpdateTag(ctx context.Context, id primitive.ObjectID, name string) (*model.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, apierr.New(apierr.KindValidation, "tag name must not be empty")
	}

	dup := new(model.Tag)
	err := s.dao.GetTagsCol().FindOne(ctx, bson.D{
		{Key: "name", Value: name},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: id}}},
	}).Decode(dup)
	if err == nil {
		return nil, apierr.New(apierr.KindConflict, "tag already exists")
	}
	if !errors.Is(err, mongoLib.ErrNoDocuments) {
		return nil, errors.Wrap(err, "check tag")
	}

	res, err := s.dao.GetTagsCol().UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"name": name, "updatedAt": time.Now()},
	})
	if err != nil {
		return nil, errors.Wrap(err, "update tag")
	}
	if res.MatchedCount == 0 {
		return nil, apierr.New(apierr.KindNotFound, "tag not found")
	}

	return s.dao.GetTagByID(ctx, id)
}

// DeleteTag removes a curated tag. Posts keep their stored copies.
func (s *Blog) DeleteTag(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.dao.GetTagsCol().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrap(err, "delete tag")
	}
	if res.DeletedCount == 0 {
		return apierr.New(apierr.KindNotFound, "tag not found")
	}

	return nil
}

// RemoveTagEverywhere strips the tag from every post that carries it, by
// exact normalized equality. Posts are rewritten one at a time and the
// first error aborts the sweep; already-saved posts stay modified.
func (s *Blog) RemoveTagEverywhere(ctx context.Context, tagName string) (message string, err error) {
	if tagName == "" {
		return "", apierr.New(apierr.KindValidation, "missing tag name")
	}
	normTag := NormalizeTag(tagName)

	cur, err := s.dao.GetPostsCol().Find(ctx, bson.D{
		{Key: "tags", Value: bson.D{
			{Key: "$exists", Value: true},
			{Key: "$ne", Value: bson.A{}},
		}},
	})
	if err != nil {
		return "", errors.Wrap(err, "find tagged posts")
	}

	posts := []*model.Post{}
	if err = cur.All(ctx, &posts); err != nil {
		return "", errors.Wrap(err, "load tagged posts")
	}

	affected := 0
	for _, post := range posts {
		remaining := WithoutTag(post.Tags, normTag)
		if len(remaining) == len(post.Tags) {
			continue
		}

		post.Tags = remaining
		post.UpdatedAt = time.Now()
		if err := s.dao.SavePost(ctx, post); err != nil {
			return "", err
		}
		affected++
	}

	s.logger.Info("removed tag everywhere",
		zap.String("tag", normTag),
		zap.Int("affected", affected))
	return fmt.Sprintf("removed tag %q from the whole system (%d posts affected)",
		normTag, affected), nil
}

// MonthlyTagCounts counts how many tags were attached to posts created in
// each month of the current year. Index 0 is January.
func (s *Blog) MonthlyTagCounts(ctx context.Context) ([12]int, error) {
	var result [12]int

	now := time.Now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pipeline := mongoLib.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{
				{Key: "$gte", Value: start},
				{Key: "$lt", Value: end},
			}},
		}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "month", Value: bson.D{{Key: "$month", Value: "$createdAt"}}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := s.dao.GetPostsCol().Aggregate(ctx, pipeline)
	if err != nil {
		return result, errors.Wrap(err, "aggregate monthly tags")
	}

	var rows []struct {
		ID struct {
			Month int `bson:"month"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err = cur.All(ctx, &rows); err != nil {
		return result, errors.Wrap(err, "load monthly tags")
	}

	for _, row := range rows {
		if row.ID.Month >= 1 && row.ID.Month <= 12 {
			result[row.ID.Month-1] = row.Count
		}
	}

	return result, nil
}
