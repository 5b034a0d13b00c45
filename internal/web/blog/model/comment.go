package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a standalone threaded comment. ParentID is nil for root
// comments; replies always reference a parent on the same blog.
type Comment struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Content  string              `bson:"content" json:"content"`
	Blog     primitive.ObjectID  `bson:"blog" json:"blog"`
	User     primitive.ObjectID  `bson:"user" json:"user"`
	ParentID *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
