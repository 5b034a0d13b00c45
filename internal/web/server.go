// Package web gin server
package web

import (
	"net/http"
	"strings"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/vividblog/vividblog-api/internal/web/blog/controller"
	"github.com/vividblog/vividblog-api/library/config"
	"github.com/vividblog/vividblog-api/library/log"
	"github.com/vividblog/vividblog-api/library/storage"
)

// RunServer blocks serving the API until the listener fails.
func RunServer(cfg *config.Config, ctl *controller.Blog, uploads *storage.Disk) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
		allowCORS(cfg.AllowedOrigins),
	)

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})
	server.GET("/test", ctl.Test)

	server.Static(cfg.UploadPublicPrefix, uploads.Root())
	ctl.RegisterRoutes(server)

	log.Logger.Info("listening on http", zap.String("addr", cfg.ListenAddr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(cfg.ListenAddr)))
}

// allowCORS echoes the Origin back for the configured origins only. An
// empty allow list accepts every origin, the development default.
func allowCORS(allowed []string) gin.HandlerFunc {
	allowAll := len(allowed) == 0
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		allowedSet[strings.ToLower(origin)] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		allowedOrigin := ""
		if origin != "" {
			if _, ok := allowedSet[strings.ToLower(origin)]; ok || allowAll {
				allowedOrigin = origin
			}
		}

		if allowedOrigin != "" {
			ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
			ctx.Header("Access-Control-Max-Age", "86400")
			ctx.Header("Vary", "Origin")

			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		} else if origin != "" && ctx.Request.Method == http.MethodOptions {
			// deny preflight from disallowed origins
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
