package cmd

import (
	"context"

	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/library/log"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "migrate",
	Long:  `create twitter collection indexes`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		db, err := dialTwitterDB(ctx)
		if err != nil {
			log.Logger.Panic("migrate", zap.Error(err))
		}
		defer closeDB(db)

		if err = dao.New(log.Logger.Named("twitter_dao"), db).EnsureIndexes(ctx); err != nil {
			log.Logger.Panic("migrate", zap.Error(err))
		}

		log.Logger.Info("twitter indexes ensured")
	},
}

func init() {
	rootCMD.AddCommand(migrateCMD)
}
