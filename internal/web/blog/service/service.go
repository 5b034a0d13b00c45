// Package service contains all the business logic of the blog API.
package service

import (
	glog "github.com/Laisky/go-utils/v6/log"

	"github.com/vividblog/vividblog-api/internal/web/blog/dao"
	"github.com/vividblog/vividblog-api/library/facebook"
	"github.com/vividblog/vividblog-api/library/jwt"
)

// Blog service type
type Blog struct {
	logger   glog.Logger
	dao      *dao.Blog
	tokener  *jwt.JWT
	facebook *facebook.Client
}

// New create new service
func New(logger glog.Logger, d *dao.Blog, tokener *jwt.JWT, fb *facebook.Client) *Blog {
	return &Blog{
		logger:   logger,
		dao:      d,
		tokener:  tokener,
		facebook: fb,
	}
}
