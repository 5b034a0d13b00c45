package dto

import (
	"github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// UserRef is the populated owner shape, mirroring a populate("userId","name").
type UserRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email,omitempty"`
}

// BlogRef is the populated blog shape used in the admin comment listing.
type BlogRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Title string             `json:"title"`
}

// PostView is a post with its owner reference expanded in place of the raw
// userId. The outer field shadows the embedded one during marshalling.
type PostView struct {
	model.Post
	UserID *UserRef `json:"userId"`
}

// NewPostView expands the post's owner. A nil owner leaves userId null,
// matching a populate that found no document.
func NewPostView(post *model.Post, owner *model.User) (*PostView, error) {
	view := new(PostView)
	if err := copier.Copy(&view.Post, post); err != nil {
		return nil, errors.Wrap(err, "copy post")
	}

	if owner != nil {
		view.UserID = &UserRef{ID: owner.ID, Name: owner.Name}
	}

	return view, nil
}

// CommentView is a comment with user and, optionally, blog populated.
type CommentView struct {
	model.Comment
	User *UserRef `json:"user"`
	Blog *BlogRef `json:"blog,omitempty"`
}

// NewCommentView expands the comment's author and blog references.
func NewCommentView(cm *model.Comment, author *model.User, blog *model.Post) (*CommentView, error) {
	view := new(CommentView)
	if err := copier.Copy(&view.Comment, cm); err != nil {
		return nil, errors.Wrap(err, "copy comment")
	}

	if author != nil {
		view.User = &UserRef{ID: author.ID, Name: author.Name, Email: author.Email}
	}
	if blog != nil {
		view.Blog = &BlogRef{ID: blog.ID, Title: blog.Title}
	}

	return view, nil
}
