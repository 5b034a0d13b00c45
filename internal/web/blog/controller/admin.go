package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

// DashboardStats GET /api/admin/stats
func (ctl *Blog) DashboardStats(c *gin.Context) {
	stats, err := ctl.svc.DashboardStats(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListPostsByStatus GET /api/admin/posts/:status. The approved view also
// carries drafts, the moderation queue shows both together. Returns the
// bare array, the historical contract of this route.
func (ctl *Blog) ListPostsByStatus(c *gin.Context) {
	posts, err := ctl.svc.ListPostsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// ApprovePost PUT /api/admin/posts/:id/approve
func (ctl *Blog) ApprovePost(c *gin.Context) {
	ctl.setFixedStatus(c, model.StatusApproved)
}

// RejectPost PUT /api/admin/posts/:id/reject
func (ctl *Blog) RejectPost(c *gin.Context) {
	ctl.setFixedStatus(c, model.StatusRejected)
}

// DraftPost PUT /api/admin/posts/:id/draft
func (ctl *Blog) DraftPost(c *gin.Context) {
	ctl.setFixedStatus(c, model.StatusDraft)
}

// setFixedStatus answers with a null post when the id matches nothing, the
// historical contract of the fixed-status routes.
func (ctl *Blog) setFixedStatus(c *gin.Context, status string) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	post, err := ctl.svc.SetPostStatusFixed(c.Request.Context(), id, status)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
		"message": "post status updated: " + status,
	})
}

// AdminDeletePost DELETE /api/admin/posts/:id, succeeds whether or not the
// post exists.
func (ctl *Blog) AdminDeletePost(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	if err := ctl.svc.AdminDeletePost(c.Request.Context(), id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "post deleted"})
}
