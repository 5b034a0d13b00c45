// Package model contains the documents stored in mongodb.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider identifies how an account was created.
const (
	ProviderLocal    = "local"
	ProviderFacebook = "facebook"
)

// Roles. Only the two the API knows about.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User accounts. Users are never hard-deleted, IsDeleted marks them as
// soft-deleted and hides them from every listing except the restore view.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// Name display name
	Name string `bson:"name" json:"name"`
	// Email login account, unique among non-deleted users
	Email string `bson:"email" json:"email"`
	// Password bcrypt hash, empty for OAuth-created accounts
	Password string `bson:"password" json:"-"`
	// FacebookID set only for accounts created via facebook login
	FacebookID string `bson:"facebookId,omitempty" json:"facebookId,omitempty"`
	// Provider local or facebook
	Provider string `bson:"provider" json:"provider"`
	// Avatar public path or external URL
	Avatar    string    `bson:"avatar" json:"avatar"`
	Role      string    `bson:"role" json:"role"`
	IsBlocked bool      `bson:"isBlocked" json:"isBlocked"`
	IsDeleted bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin is admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
