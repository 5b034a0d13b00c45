package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag names are stored trimmed and lowercased, which makes uniqueness
// case-insensitive without a collation index.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
