package controller

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

const identityCtxKey = "blog/identity"

// Identity is the authenticated caller, resolved from the token and the
// users collection on every request.
type Identity struct {
	UserID primitive.ObjectID
	Name   string
	Email  string
	Role   string
}

// IsAdmin is admin
func (id *Identity) IsAdmin() bool {
	return id.Role == model.RoleAdmin
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}

// AuthRequired authenticates the request. Missing token is 401, a bad or
// expired signature is 403, a vanished or soft-deleted account is 401 and a
// blocked account is 403 everywhere.
func (ctl *Blog) AuthRequired(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		apierr.Abort(c, apierr.New(apierr.KindUnauthenticated, "missing token"))
		return
	}

	claims, err := ctl.svc.VerifyToken(token)
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindInvalidCredential, "invalid token"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindInvalidCredential, "invalid token"))
		return
	}

	user, err := ctl.svc.AuthenticatedUser(c.Request.Context(), userID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.Set(identityCtxKey, &Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	c.Next()
}

// RequireAdmin must run after AuthRequired.
func (ctl *Blog) RequireAdmin(c *gin.Context) {
	if !ctl.identity(c).IsAdmin() {
		apierr.Abort(c, apierr.New(apierr.KindForbidden, "admin permission required"))
		return
	}

	c.Next()
}

// identity returns the caller stored by AuthRequired.
func (ctl *Blog) identity(c *gin.Context) *Identity {
	v, _ := c.Get(identityCtxKey)
	id, _ := v.(*Identity)
	if id == nil {
		// route misconfiguration, AuthRequired must run first
		return &Identity{}
	}

	return id
}
