// Package controller wires the HTTP surface to the blog service.
package controller

import (
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	oauthFacebook "golang.org/x/oauth2/facebook"

	"github.com/vividblog/vividblog-api/internal/web/blog/service"
	"github.com/vividblog/vividblog-api/library/config"
	"github.com/vividblog/vividblog-api/library/storage"
)

// Blog controller type
type Blog struct {
	logger  glog.Logger
	svc     *service.Blog
	cfg     *config.Config
	uploads *storage.Disk
	oauth   *oauth2.Config
}

// New create new controller
func New(logger glog.Logger, svc *service.Blog, cfg *config.Config, uploads *storage.Disk) *Blog {
	ctl := &Blog{
		logger:  logger,
		svc:     svc,
		cfg:     cfg,
		uploads: uploads,
	}

	if cfg.FacebookLoginEnabled() {
		ctl.oauth = &oauth2.Config{
			ClientID:     cfg.FacebookAppID,
			ClientSecret: cfg.FacebookAppSecret,
			RedirectURL:  cfg.FacebookCallbackURL,
			Scopes:       []string{"email"},
			Endpoint:     oauthFacebook.Endpoint,
		}
	}

	return ctl
}

// RegisterRoutes mounts every API route on the engine.
func (ctl *Blog) RegisterRoutes(engine *gin.Engine) {
	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", ctl.Register)
	auth.POST("/login", ctl.Login)
	auth.POST("/facebook", ctl.FacebookTokenLogin)
	auth.GET("/facebook", ctl.FacebookRedirect)
	auth.GET("/facebook/callback", ctl.FacebookCallback)
	auth.GET("/me", ctl.AuthRequired, ctl.Me)
	auth.PUT("/update-profile", ctl.AuthRequired, ctl.UpdateProfile)

	blogs := api.Group("/blogs")
	blogs.POST("", ctl.CreateBlog)
	blogs.GET("", ctl.ListBlogs)
	blogs.GET("/user/:userId", ctl.ListBlogsByUser)
	blogs.GET("/:id", ctl.GetBlog)
	blogs.GET("/:id/related", ctl.RelatedBlogs)
	blogs.PUT("/:id", ctl.UpdateBlog)
	blogs.DELETE("/:id", ctl.DeleteBlog)
	blogs.PATCH("/:id/approve", ctl.ModerateBlog)
	blogs.POST("/:id/comments", ctl.AddEmbeddedComment)
	blogs.DELETE("/:id/comments/:commentId", ctl.RemoveEmbeddedComment)
	blogs.POST("/:id/like", ctl.ToggleLike)
	blogs.POST("/:id/bookmark", ctl.ToggleBookmark)

	posts := api.Group("/posts", ctl.AuthRequired)
	posts.GET("", ctl.ListPosts)
	posts.POST("", ctl.CreatePost)
	posts.GET("/:id", ctl.GetPost)
	posts.PATCH("/:id/status", ctl.SetPostStatus)
	posts.DELETE("/:id", ctl.DeletePost)

	comments := api.Group("/comments")
	comments.POST("", ctl.AuthRequired, ctl.CreateComment)
	comments.POST("/:id/reply", ctl.AuthRequired, ctl.ReplyComment)
	comments.GET("", ctl.AuthRequired, ctl.RequireAdmin, ctl.ListAllComments)
	comments.GET("/blog/:blogId", ctl.BlogComments)
	comments.DELETE("/:id", ctl.AuthRequired, ctl.DeleteComment)

	users := api.Group("/users")
	users.GET("", ctl.AuthRequired, ctl.RequireAdmin, ctl.ListUsers)
	users.GET("/deleted", ctl.AuthRequired, ctl.RequireAdmin, ctl.ListDeletedUsers)
	users.GET("/:id", ctl.AuthRequired, ctl.GetUser)
	users.PUT("/:id", ctl.AuthRequired, ctl.UpdateOwnUser)
	users.POST("/avatar", ctl.AuthRequired, ctl.UploadAvatar)
	users.PATCH("/:id/block", ctl.AuthRequired, ctl.RequireAdmin, ctl.ToggleUserBlock)
	users.DELETE("/:id", ctl.AuthRequired, ctl.RequireAdmin, ctl.DeleteUser)
	users.PATCH("/:id/restore", ctl.AuthRequired, ctl.RequireAdmin, ctl.RestoreUser)
	users.PATCH("/:id/info", ctl.AuthRequired, ctl.RequireAdmin, ctl.UpdateUserInfo)
	users.PATCH("/:id/role", ctl.AuthRequired, ctl.RequireAdmin, ctl.SetUserRole)

	tags := api.Group("/tags")
	tags.GET("/unique", ctl.UniqueTags)
	tags.GET("/all-unique", ctl.UniqueTags)
	tags.GET("/unique-from-blogs", ctl.UniqueTagsFromBlogs)
	tags.GET("/available-for-filter", ctl.AvailableTagsForFilter)
	tags.GET("/monthly", ctl.MonthlyTags)
	tags.GET("", ctl.AuthRequired, ctl.RequireAdmin, ctl.ListTags)
	tags.POST("", ctl.AuthRequired, ctl.RequireAdmin, ctl.CreateTag)
	tags.PUT("/:id", ctl.AuthRequired, ctl.RequireAdmin, ctl.UpdateTag)
	tags.DELETE("/remove-from-all/:tagName", ctl.AuthRequired, ctl.RequireAdmin, ctl.RemoveTagEverywhere)
	tags.DELETE("/:id", ctl.AuthRequired, ctl.RequireAdmin, ctl.DeleteTag)

	admin := api.Group("/admin", ctl.AuthRequired, ctl.RequireAdmin)
	admin.GET("/stats", ctl.DashboardStats)
	admin.GET("/posts/:status", ctl.ListPostsByStatus)
	admin.PUT("/posts/:id/approve", ctl.ApprovePost)
	admin.PUT("/posts/:id/reject", ctl.RejectPost)
	admin.PUT("/posts/:id/draft", ctl.DraftPost)
	admin.DELETE("/posts/:id", ctl.AdminDeletePost)

	api.POST("/upload", ctl.Upload)
	api.GET("/test-token", ctl.TestToken)
	api.GET("/test", ctl.Test)
}
