package controller

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/internal/web/blog/service"
)

// userPayload is the user shape embedded in auth responses. The password
// hash never leaves the model's json mapping anyway, this trims the rest.
func userPayload(u *model.User) gin.H {
	return gin.H{
		"_id":       u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"avatar":    u.Avatar,
		"role":      u.Role,
		"isBlocked": u.IsBlocked,
		"isDeleted": u.IsDeleted,
	}
}

// Register POST /api/auth/register
func (ctl *Blog) Register(c *gin.Context) {
	req := new(dto.RegisterRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	result, err := ctl.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "registration successful",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// Login POST /api/auth/login
func (ctl *Blog) Login(c *gin.Context) {
	req := new(dto.LoginRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	result, err := ctl.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// FacebookTokenLogin POST /api/auth/facebook
func (ctl *Blog) FacebookTokenLogin(c *gin.Context) {
	req := new(dto.FacebookTokenRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	result, err := ctl.svc.FacebookTokenLogin(c.Request.Context(), req.AccessToken)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    userPayload(result.User),
	})
}

// FacebookRedirect GET /api/auth/facebook
func (ctl *Blog) FacebookRedirect(c *gin.Context) {
	if ctl.oauth == nil {
		apierr.Abort(c, apierr.New(apierr.KindServer, "facebook login is not configured"))
		return
	}

	c.Redirect(http.StatusFound, ctl.oauth.AuthCodeURL(""))
}

// FacebookCallback GET /api/auth/facebook/callback exchanges the code and
// bounces the browser back to the frontend with token and user attached.
func (ctl *Blog) FacebookCallback(c *gin.Context) {
	if ctl.oauth == nil {
		apierr.Abort(c, apierr.New(apierr.KindServer, "facebook login is not configured"))
		return
	}

	code := c.Query("code")
	if code == "" {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "missing code"))
		return
	}

	oauthToken, err := ctl.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		ctl.logger.Warn("facebook code exchange failed", zap.Error(err))
		apierr.Abort(c, apierr.New(apierr.KindInvalidCredential, "facebook login failed"))
		return
	}

	result, err := ctl.svc.FacebookOAuthLogin(c.Request.Context(), oauthToken.AccessToken)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.Redirect(http.StatusFound, frontendLoginTarget(ctl.cfg.FrontendLoginURL, result))
}

func frontendLoginTarget(base string, result *service.AuthResult) string {
	userJSON, _ := json.Marshal(map[string]any{
		"_id":    result.User.ID,
		"name":   result.User.Name,
		"email":  result.User.Email,
		"avatar": result.User.Avatar,
		"role":   result.User.Role,
	})

	q := url.Values{}
	q.Set("token", result.Token)
	q.Set("user", string(userJSON))
	return base + "?" + q.Encode()
}

// Me GET /api/auth/me
func (ctl *Blog) Me(c *gin.Context) {
	identity := ctl.identity(c)
	user, err := ctl.svc.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"_id":    user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"avatar": user.Avatar,
			"role":   user.Role,
		},
	})
}

// UpdateProfile PUT /api/auth/update-profile accepts a multipart form with
// an optional avatar file.
func (ctl *Blog) UpdateProfile(c *gin.Context) {
	identity := ctl.identity(c)

	avatar, err := ctl.saveUploadedFile(c, "avatar")
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	user, err := ctl.svc.UpdateProfile(c.Request.Context(), identity.UserID,
		c.PostForm("name"), c.PostForm("email"), avatar)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "profile updated",
		"data":    userPayload(user),
	})
}
