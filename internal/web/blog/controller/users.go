package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

// ListUsers GET /api/users
func (ctl *Blog) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	users, totalPages, err := ctl.svc.ListUsers(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"users":      users,
		"totalPages": totalPages,
	})
}

// ListDeletedUsers GET /api/users/deleted
func (ctl *Blog) ListDeletedUsers(c *gin.Context) {
	users, err := ctl.svc.ListDeletedUsers(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// GetUser GET /api/users/:id
func (ctl *Blog) GetUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	user, err := ctl.svc.GetActiveUser(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateOwnUser PUT /api/users/:id, a user may only edit their own record.
func (ctl *Blog) UpdateOwnUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	req := new(dto.UpdateUserRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	user, err := ctl.svc.UpdateOwnUser(c.Request.Context(),
		ctl.identity(c).UserID, id, req.Name, req.Email)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"message": "profile updated",
	})
}

// UploadAvatar POST /api/users/avatar
func (ctl *Blog) UploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "no file uploaded"))
		return
	}

	f, err := header.Open()
	if err != nil {
		apierr.Abort(c, err)
		return
	}
	defer f.Close()

	url, err := ctl.uploads.Save(header.Filename, f)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	if _, err := ctl.svc.SetAvatar(c.Request.Context(),
		ctl.identity(c).UserID, url); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"avatarUrl": url,
		"message":   "avatar updated",
	})
}

// ToggleUserBlock PATCH /api/users/:id/block
func (ctl *Blog) ToggleUserBlock(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	blocked, err := ctl.svc.ToggleUserBlock(c.Request.Context(), ctl.identity(c).UserID, id)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	message := "user unblocked"
	if blocked {
		message = "user blocked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// DeleteUser DELETE /api/users/:id, a soft delete.
func (ctl *Blog) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	if err := ctl.svc.SoftDeleteUser(c.Request.Context(),
		ctl.identity(c).UserID, id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted"})
}

// RestoreUser PATCH /api/users/:id/restore
func (ctl *Blog) RestoreUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	if err := ctl.svc.RestoreUser(c.Request.Context(), id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user restored"})
}

// UpdateUserInfo PATCH /api/users/:id/info
func (ctl *Blog) UpdateUserInfo(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	req := new(dto.UpdateUserRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	if err := ctl.svc.UpdateUserInfo(c.Request.Context(),
		ctl.identity(c).UserID, id, req.Name, req.Email); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user info updated"})
}

// SetUserRole PATCH /api/users/:id/role
func (ctl *Blog) SetUserRole(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid user id")
	if !ok {
		return
	}

	req := new(dto.UserRoleRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	if err := ctl.svc.SetUserRole(c.Request.Context(),
		ctl.identity(c).UserID, id, req.Role); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user role updated: " + req.Role})
}
