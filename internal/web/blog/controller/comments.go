package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

// CreateComment POST /api/comments
func (ctl *Blog) CreateComment(c *gin.Context) {
	req := new(dto.CreateCommentRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "content and blog id are required"))
		return
	}

	comment, err := ctl.svc.CreateComment(c.Request.Context(),
		ctl.identity(c).UserID, req.Content, req.BlogID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
		"message": "comment created",
	})
}

// ReplyComment POST /api/comments/:id/reply
func (ctl *Blog) ReplyComment(c *gin.Context) {
	parentID, ok := objectIDParam(c, "id", "invalid comment id")
	if !ok {
		return
	}

	req := new(dto.ReplyCommentRequest)
	if err := c.ShouldBindJSON(req); err != nil || req.Content == "" {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "content is required"))
		return
	}

	reply, err := ctl.svc.ReplyComment(c.Request.Context(),
		ctl.identity(c).UserID, parentID, req.Content)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "reply": reply})
}

// ListAllComments GET /api/comments, admin moderation view. Returns the
// bare array, the historical contract of this route.
func (ctl *Blog) ListAllComments(c *gin.Context) {
	views, err := ctl.svc.ListAllComments(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// BlogComments GET /api/comments/blog/:blogId
func (ctl *Blog) BlogComments(c *gin.Context) {
	blogID, ok := objectIDParam(c, "blogId", "invalid post id")
	if !ok {
		return
	}

	roots, replies, err := ctl.svc.BlogComments(c.Request.Context(), blogID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"comments": roots,
		"replies":  replies,
	})
}

// DeleteComment DELETE /api/comments/:id, the author or an admin only.
func (ctl *Blog) DeleteComment(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid comment id")
	if !ok {
		return
	}

	actor := ctl.identity(c)
	if err := ctl.svc.DeleteComment(c.Request.Context(),
		actor.UserID, actor.Role, id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment deleted"})
}
