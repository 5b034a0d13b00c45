package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/vividblog/vividblog-api/internal/web"
	"github.com/vividblog/vividblog-api/internal/web/blog/controller"
	"github.com/vividblog/vividblog-api/internal/web/blog/dao"
	"github.com/vividblog/vividblog-api/internal/web/blog/service"
	"github.com/vividblog/vividblog-api/library/config"
	"github.com/vividblog/vividblog-api/library/db/mongo"
	"github.com/vividblog/vividblog-api/library/facebook"
	"github.com/vividblog/vividblog-api/library/jwt"
	"github.com/vividblog/vividblog-api/library/log"
	"github.com/vividblog/vividblog-api/library/storage"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `REST API service for the vividblog platform`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runAPI(context.Background())
	},
}

func runAPI(ctx context.Context) {
	cfg, err := config.New()
	if err != nil {
		log.Logger.Panic("load config", zap.Error(err))
	}
	if listen := gconfig.Shared.GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}

	db, err := mongo.NewDB(ctx, mongo.DialInfo{
		Addr:   cfg.MongoAddr,
		DBName: cfg.MongoDBName,
		User:   cfg.MongoUser,
		Pwd:    cfg.MongoPwd,
	})
	if err != nil {
		log.Logger.Panic("dial mongo", zap.Error(err))
	}
	defer db.Close(ctx) //nolint:errcheck

	tokener, err := jwt.New([]byte(cfg.TokenSecret))
	if err != nil {
		log.Logger.Panic("setup jwt", zap.Error(err))
	}

	uploads, err := storage.NewDisk(cfg.UploadDir, cfg.UploadPublicPrefix)
	if err != nil {
		log.Logger.Panic("setup upload dir", zap.Error(err))
	}

	d := dao.New(log.Logger.Named("dao"), db)
	svc := service.New(log.Logger.Named("service"), d, tokener, facebook.NewClient())
	ctl := controller.New(log.Logger.Named("controller"), svc, cfg, uploads)

	web.RunServer(cfg, ctl, uploads)
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
