package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexes every collection needs, keyed by collection name
func indexes() map[string][]mongoLib.IndexModel {
	return map[string][]mongoLib.IndexModel{
		ColTweets: {
			{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		ColUsers: {
			{Keys: bson.D{{Key: "twitter_circle", Value: 1}}},
		},
		ColFollowers: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "followed_user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		ColLikes: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "tweet_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "tweet_id", Value: 1}}},
		},
		ColBookmarks: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "tweet_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "tweet_id", Value: 1}}},
		},
		ColHashtags: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}

// EnsureIndexes create indexes if not exists
func (d *Tweets) EnsureIndexes(ctx context.Context) error {
	for col, models := range indexes() {
		names, err := d.db.GetCol(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return errors.Wrapf(err, "create indexes of `%s`", col)
		}

		d.logger.Debug("ensure indexes", zap.String("col", col), zap.Strings("indexes", names))
	}

	return nil
}
