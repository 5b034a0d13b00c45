// Package dto holds the request and response shapes of the JSON API.
package dto

// RegisterRequest body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FacebookTokenRequest body of POST /api/auth/facebook.
type FacebookTokenRequest struct {
	AccessToken string `json:"accessToken"`
}

// CreateBlogRequest body of POST /api/blogs. Role and UserID are taken from
// the body on this route, the historical public contract.
type CreateBlogRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     TagInput `json:"tags"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Role     string   `json:"role"`
	UserID   string   `json:"userId"`
	Image    string   `json:"image"`
}

// UpdateBlogRequest body of PUT /api/blogs/:id. Empty fields keep the
// stored value.
type UpdateBlogRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     TagInput `json:"tags"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Image    string   `json:"image"`
}

// ModerateBlogRequest body of PATCH /api/blogs/:id/approve.
type ModerateBlogRequest struct {
	Status string `json:"status"`
}

// ToggleRequest body of the like/bookmark toggles.
type ToggleRequest struct {
	UserID string `json:"userId"`
}

// EmbeddedCommentRequest body of POST /api/blogs/:id/comments.
type EmbeddedCommentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// CreatePostRequest body of POST /api/posts.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    TagInput `json:"tags"`
	Image   string   `json:"image"`
}

// PostStatusRequest body of PATCH /api/posts/:id/status.
type PostStatusRequest struct {
	Status string `json:"status"`
}

// CreateCommentRequest body of POST /api/comments.
type CreateCommentRequest struct {
	Content string `json:"content"`
	BlogID  string `json:"blogId"`
}

// ReplyCommentRequest body of POST /api/comments/:commentId/reply.
type ReplyCommentRequest struct {
	Content string `json:"content"`
}

// UpdateUserRequest body of PUT /api/users/:id and PATCH /api/users/:id/info.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRoleRequest body of PATCH /api/users/:id/role.
type UserRoleRequest struct {
	Role string `json:"role"`
}

// TagRequest body of POST /api/tags and PUT /api/tags/:id.
type TagRequest struct {
	Name string `json:"name"`
}
