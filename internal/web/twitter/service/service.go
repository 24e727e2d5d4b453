// Package service service for twitter API
package service

import (
	"context"

	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

// Gateway storage used by the service, implemented by *dao.Tweets
type Gateway interface {
	GetTweet(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error)
	FindTweetPage(ctx context.Context, q *dao.TweetPageQuery) ([]*model.Tweet, int64, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID, field dao.ViewField) (*model.ViewCounters, error)
	InsertTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error)
	UpsertHashtags(ctx context.Context, names []string) ([]model.Hashtag, error)
	FindHashtags(ctx context.Context, ids []primitive.ObjectID) ([]model.Hashtag, error)

	GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error)
	IsFollowing(ctx context.Context, follower, followed primitive.ObjectID) (bool, error)
	FollowedUserIDs(ctx context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error)
	CircleGrantorIDs(ctx context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error)

	CountGroupedBy(ctx context.Context, q *dao.GroupCountQuery) ([]dao.GroupCount, error)
	UpsertLike(ctx context.Context, uid, tweetID primitive.ObjectID) (*model.Like, error)
	DeleteLike(ctx context.Context, uid, tweetID primitive.ObjectID) (bool, error)
	UpsertBookmark(ctx context.Context, uid, tweetID primitive.ObjectID) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, uid, tweetID primitive.ObjectID) (bool, error)
}

var _ Gateway = (*dao.Tweets)(nil)

// Twitter tweet visibility and aggregation
type Twitter struct {
	logger glog.Logger
	gw     Gateway
}

// New create new twitter service
func New(logger glog.Logger, gw Gateway) *Twitter {
	return &Twitter{
		logger: logger,
		gw:     gw,
	}
}
