package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

// ListPosts GET /api/posts
func (ctl *Blog) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	posts, totalPages, err := ctl.svc.ListPosts(c.Request.Context(),
		c.Query("search"), page, c.Query("status"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"posts":      posts,
		"totalPages": totalPages,
	})
}

// CreatePost POST /api/posts, the author comes from the token.
func (ctl *Blog) CreatePost(c *gin.Context) {
	req := new(dto.CreatePostRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
		return
	}

	post, err := ctl.svc.CreatePost(c.Request.Context(), ctl.identity(c).UserID, req)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"post":    post,
		"message": "post submitted for review",
	})
}

// GetPost GET /api/posts/:id
func (ctl *Blog) GetPost(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	post, err := ctl.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// SetPostStatus PATCH /api/posts/:id/status
func (ctl *Blog) SetPostStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	req := new(dto.PostStatusRequest)
	if err := c.ShouldBindJSON(req); err != nil || req.Status == "" {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "status is required"))
		return
	}

	actor := ctl.identity(c)
	post, err := ctl.svc.SetPostStatus(c.Request.Context(),
		actor.UserID, actor.Role, id, req.Status)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
		"message": "post status updated",
	})
}

// DeletePost DELETE /api/posts/:id
func (ctl *Blog) DeletePost(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	if err := ctl.svc.DeletePost(c.Request.Context(), id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "post deleted"})
}
