package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
)

// UniqueTags GET /api/tags/unique
func (ctl *Blog) UniqueTags(c *gin.Context) {
	tags, err := ctl.svc.UniqueTags(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tags": tags})
}

// UniqueTagsFromBlogs GET /api/tags/unique-from-blogs
func (ctl *Blog) UniqueTagsFromBlogs(c *gin.Context) {
	tags, err := ctl.svc.UniqueTagsFromBlogs(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tags": tags})
}

// AvailableTagsForFilter GET /api/tags/available-for-filter
func (ctl *Blog) AvailableTagsForFilter(c *gin.Context) {
	tags, err := ctl.svc.AvailableTagsForFilter(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tags": tags})
}

// MonthlyTags GET /api/tags/monthly, tag usage per month of the current
// year. Returns the bare object, the historical contract of this route.
func (ctl *Blog) MonthlyTags(c *gin.Context) {
	counts, err := ctl.svc.MonthlyTagCounts(c.Request.Context())
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthlyTags": counts})
}

// ListTags GET /api/tags, the curated list. Returns the bare object, the
// historical contract of this route.
func (ctl *Blog) ListTags(c *gin.Context) {
	tags, err := ctl.svc.ListTags(c.Request.Context(), c.Query("search"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag POST /api/tags
func (ctl *Blog) CreateTag(c *gin.Context) {
	req := new(dto.TagRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "tag name is required"))
		return
	}

	tag, err := ctl.svc.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"tag":     tag,
		"message": "tag created",
	})
}

// UpdateTag PUT /api/tags/:id
func (ctl *Blog) UpdateTag(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid tag id")
	if !ok {
		return
	}

	req := new(dto.TagRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "tag name is required"))
		return
	}

	tag, err := ctl.svc.UpdateTag(c.Request.Context(), id, req.Name)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tag":     tag,
		"message": "tag updated",
	})
}

// DeleteTag DELETE /api/tags/:id, removes the curated entry only.
func (ctl *Blog) DeleteTag(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid tag id")
	if !ok {
		return
	}

	if err := ctl.svc.DeleteTag(c.Request.Context(), id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "tag deleted"})
}

// RemoveTagEverywhere DELETE /api/tags/remove-from-all/:tagName, strips the
// tag from every post that carries it.
func (ctl *Blog) RemoveTagEverywhere(c *gin.Context) {
	message, err := ctl.svc.RemoveTagEverywhere(c.Request.Context(), c.Param("tagName"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
