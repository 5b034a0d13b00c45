package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post statuses.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPublic   = "public"
)

// Post is the single canonical article document. Both the public blog
// routes and the token-gated post routes operate on this collection.
type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	// Image public upload path or external URL
	Image string `bson:"image" json:"image"`
	// Tags as stored at creation: trimmed, case preserved, deduped
	Tags     []string `bson:"tags" json:"tags"`
	Category string   `bson:"category" json:"category"`
	Status   string   `bson:"status" json:"status"`
	Views    int      `bson:"views" json:"views"`
	// Likes and Bookmarks hold user-id strings, toggled membership
	Likes     []string `bson:"likes" json:"likes"`
	Bookmarks []string `bson:"bookmarks" json:"bookmarks"`
	// Comments legacy embedded comments, distinct from the comments collection
	Comments  []EmbeddedComment  `bson:"comments" json:"comments"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmbeddedComment lives inside the post document. The author is a free-form
// display name, not a user reference.
type EmbeddedComment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
