package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/dto"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
)

func objectIDParam(c *gin.Context, name, message string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, message))
		return primitive.NilObjectID, false
	}

	return id, true
}

// bindBlogCreate accepts either JSON or the historical multipart form with
// an optional image file.
func (ctl *Blog) bindBlogCreate(c *gin.Context) (*dto.CreateBlogRequest, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req := &dto.CreateBlogRequest{
			Title:    c.PostForm("title"),
			Content:  c.PostForm("content"),
			Category: c.PostForm("category"),
			Status:   c.PostForm("status"),
			Role:     c.PostForm("role"),
			UserID:   c.PostForm("userId"),
			Image:    c.PostForm("image"),
		}
		if tags, ok := c.GetPostForm("tags"); ok {
			req.Tags = dto.TagInputFromString(tags)
		}

		uploaded, err := ctl.saveUploadedFile(c, "image")
		if err != nil {
			return nil, "", err
		}
		return req, uploaded, nil
	}

	req := new(dto.CreateBlogRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, "", apierr.New(apierr.KindValidation, "invalid request body")
	}

	return req, "", nil
}

// CreateBlog POST /api/blogs
func (ctl *Blog) CreateBlog(c *gin.Context) {
	req, uploadedImage, err := ctl.bindBlogCreate(c)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	post, err := ctl.svc.CreateBlog(c.Request.Context(), req, uploadedImage)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	var message string
	switch post.Status {
	case model.StatusApproved:
		message = "post created and approved"
	case model.StatusPending:
		message = "post created, waiting for approval"
	default:
		message = "draft saved"
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    post,
		"message": message,
	})
}

// ListBlogs GET /api/blogs
func (ctl *Blog) ListBlogs(c *gin.Context) {
	views, err := ctl.svc.ListBlogs(c.Request.Context(),
		c.Query("tag"), c.Query("status"), c.Query("category"))
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"message": "posts loaded",
	})
}

// ListBlogsByUser GET /api/blogs/user/:userId
func (ctl *Blog) ListBlogsByUser(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId", "invalid user id")
	if !ok {
		return
	}

	views, err := ctl.svc.ListBlogsByUser(c.Request.Context(), userID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"message": "user posts loaded",
	})
}

// GetBlog GET /api/blogs/:id
func (ctl *Blog) GetBlog(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	view, err := ctl.svc.GetBlog(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// RelatedBlogs GET /api/blogs/:id/related
func (ctl *Blog) RelatedBlogs(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	views, err := ctl.svc.RelatedBlogs(c.Request.Context(), id)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
		"message": "related posts loaded",
	})
}

// UpdateBlog PUT /api/blogs/:id
func (ctl *Blog) UpdateBlog(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	var req *dto.UpdateBlogRequest
	var uploadedImage string
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		req = &dto.UpdateBlogRequest{
			Title:    c.PostForm("title"),
			Content:  c.PostForm("content"),
			Category: c.PostForm("category"),
			Status:   c.PostForm("status"),
		}
		if tags, hasTags := c.GetPostForm("tags"); hasTags {
			req.Tags = dto.TagInputFromString(tags)
		}

		var err error
		if uploadedImage, err = ctl.saveUploadedFile(c, "image"); err != nil {
			apierr.Abort(c, err)
			return
		}
	} else {
		req = new(dto.UpdateBlogRequest)
		if err := c.ShouldBindJSON(req); err != nil {
			apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid request body"))
			return
		}
	}

	post, err := ctl.svc.UpdateBlog(c.Request.Context(), id, req, uploadedImage)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    post,
		"message": "post updated",
	})
}

// DeleteBlog DELETE /api/blogs/:id
func (ctl *Blog) DeleteBlog(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	if err := ctl.svc.DeleteBlog(c.Request.Context(), id); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "post deleted"})
}

// ModerateBlog PATCH /api/blogs/:id/approve
func (ctl *Blog) ModerateBlog(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	req := new(dto.ModerateBlogRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid status"))
		return
	}

	if err := ctl.svc.ModerateBlog(c.Request.Context(), id, req.Status); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "post status updated: " + req.Status,
	})
}

// AddEmbeddedComment POST /api/blogs/:id/comments
func (ctl *Blog) AddEmbeddedComment(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	req := new(dto.EmbeddedCommentRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "content and author are required"))
		return
	}

	comment, err := ctl.svc.AddEmbeddedComment(c.Request.Context(), id, req.Content, req.Author)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
		"message": "comment added",
	})
}

// RemoveEmbeddedComment DELETE /api/blogs/:id/comments/:commentId
func (ctl *Blog) RemoveEmbeddedComment(c *gin.Context) {
	blogID, ok := objectIDParam(c, "id", "invalid post or comment id")
	if !ok {
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "invalid post or comment id"))
		return
	}

	if err := ctl.svc.RemoveEmbeddedComment(c.Request.Context(), blogID, commentID); err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment deleted"})
}

// ToggleLike POST /api/blogs/:id/like
func (ctl *Blog) ToggleLike(c *gin.Context) {
	ctl.toggle(c, ctl.svc.ToggleLike, "reaction updated")
}

// ToggleBookmark POST /api/blogs/:id/bookmark
func (ctl *Blog) ToggleBookmark(c *gin.Context) {
	ctl.toggle(c, ctl.svc.ToggleBookmark, "bookmark updated")
}

func (ctl *Blog) toggle(c *gin.Context,
	do func(ctx context.Context, blogID primitive.ObjectID, userID string) (*model.Post, error),
	message string) {
	id, ok := objectIDParam(c, "id", "invalid post id")
	if !ok {
		return
	}

	req := new(dto.ToggleRequest)
	if err := c.ShouldBindJSON(req); err != nil || req.UserID == "" {
		apierr.Abort(c, apierr.New(apierr.KindValidation, "userId is required"))
		return
	}

	post, err := do(c.Request.Context(), id, req.UserID)
	if err != nil {
		apierr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    post,
		"message": message,
	})
}
