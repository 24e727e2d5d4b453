package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/leducanh112/Twitter-API/internal/web"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/controller"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/service"
	"github.com/leducanh112/Twitter-API/library/auth"
	"github.com/leducanh112/Twitter-API/library/db/mongo"
	"github.com/leducanh112/Twitter-API/library/jwt"
	"github.com/leducanh112/Twitter-API/library/log"
	"github.com/leducanh112/Twitter-API/library/throttle"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `REST API service for tweets, feeds and engagements`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runAPI(ctx); err != nil {
			log.Logger.Panic("run api", zap.Error(err))
		}
	},
}

func runAPI(ctx context.Context) error {
	db, err := dialTwitterDB(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	defer closeDB(db)

	twitterDao := dao.New(log.Logger.Named("twitter_dao"), db)
	if err = twitterDao.EnsureIndexes(ctx); err != nil {
		return errors.Wrap(err, "ensure twitter indexes")
	}

	parser, err := jwt.New([]byte(gconfig.Shared.GetString("settings.secret")))
	if err != nil {
		return errors.Wrap(err, "new jwt parser")
	}

	th, err := newThrottle()
	if err != nil {
		return errors.Wrap(err, "new throttle")
	}

	svc := service.New(log.Logger.Named("twitter_service"), twitterDao)
	server := web.NewServer(&web.Options{
		Tweets:      controller.New(svc),
		Auth:        auth.New(parser, controller.AbortWithMessage),
		Throttle:    th,
		CORSDomains: gconfig.Shared.GetStringSlice("settings.web.cors_domains"),
	})

	return web.RunServer(ctx, gconfig.Shared.GetString("listen"), server)
}

func dialTwitterDB(ctx context.Context) (mongo.DB, error) {
	db, err := mongo.NewDB(ctx, mongo.DialInfo{
		Addr:        gconfig.Shared.GetString("settings.db.twitter.addr"),
		DBName:      gconfig.Shared.GetString("settings.db.twitter.db"),
		User:        gconfig.Shared.GetString("settings.db.twitter.user"),
		Pwd:         gconfig.Shared.GetString("settings.db.twitter.pwd"),
		AuthDB:      gconfig.Shared.GetString("settings.db.twitter.auth_db"),
		MaxPoolSize: uint64(gconfig.Shared.GetInt("settings.db.twitter.max_pool_size")),
	})
	if err != nil {
		return nil, errors.Wrap(err, "dial twitter db")
	}

	return db, nil
}

func closeDB(db mongo.DB) {
	if err := db.Close(context.Background()); err != nil {
		log.Logger.Error("close twitter db", zap.Error(err))
	}
}

// newThrottle build write throttle, nil when not configured
func newThrottle() (*throttle.Throttle, error) {
	if gconfig.Shared.Get("settings.throttle") == nil {
		log.Logger.Info("write throttle disabled")
		return nil, nil
	}

	return throttle.New(&throttle.Config{
		TotalNPerSec:    gconfig.Shared.GetInt("settings.throttle.total_per_sec"),
		TotalBurst:      gconfig.Shared.GetInt("settings.throttle.total_burst"),
		EachUserNPerSec: gconfig.Shared.GetInt("settings.throttle.each_user_per_sec"),
		EachUserBurst:   gconfig.Shared.GetInt("settings.throttle.each_user_burst"),
	})
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
