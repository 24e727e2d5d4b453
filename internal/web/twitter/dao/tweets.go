package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/db/mongo"
)

// GetTweet load tweet by id
func (d *Tweets) GetTweet(ctx context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	tweet := new(model.Tweet)
	if err := d.GetTweetCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(tweet); mongo.NotFound(err) {
		return nil, errors.Wrapf(model.ErrTweetNotFound, "tweet `%s`", id.Hex())
	} else if err != nil {
		return nil, errors.Wrapf(err, "load tweet `%s`", id.Hex())
	}

	return tweet, nil
}

// FindTweetPage load one page of tweets and the total matched by query
func (d *Tweets) FindTweetPage(ctx context.Context, q *TweetPageQuery) (tweets []*model.Tweet, total int64, err error) {
	filter := q.filter()
	logger := d.logger.With(zap.Any("filter", filter),
		zap.Int64("skip", q.Skip), zap.Int64("limit", q.Limit))

	var pool errgroup.Group
	pool.Go(func() error {
		n, err := d.GetTweetCol().CountDocuments(ctx, filter)
		if err != nil {
			return errors.Wrap(err, "count tweets")
		}

		total = n
		return nil
	})
	pool.Go(func() error {
		cur, err := d.GetTweetCol().
			Find(ctx, filter,
				options.Find().SetSort(pageSort),
				options.Find().SetSkip(q.Skip),
				options.Find().SetLimit(q.Limit),
			)
		if err != nil {
			return errors.Wrap(err, "find tweets")
		}

		page := []*model.Tweet{}
		if err = cur.All(ctx, &page); err != nil {
			return errors.Wrap(err, "load tweets")
		}

		tweets = page
		return nil
	})
	if err = pool.Wait(); err != nil {
		return nil, 0, err
	}

	logger.Debug("load tweet page", zap.Int("got", len(tweets)), zap.Int64("total", total))
	return tweets, total, nil
}

// IncrementViews atomically increase one view counter of tweet,
// return counters after the increment
func (d *Tweets) IncrementViews(ctx context.Context,
	id primitive.ObjectID, field ViewField) (*model.ViewCounters, error) {
	if field != ViewFieldGuest && field != ViewFieldUser {
		return nil, errors.Errorf("unknown view field `%s`", field)
	}

	counters := new(model.ViewCounters)
	if err := d.GetTweetCol().
		FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{
				"$inc":         bson.M{string(field): 1},
				"$currentDate": bson.M{"updated_at": true},
			},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"guest_views": 1, "user_views": 1, "updated_at": 1}),
		).
		Decode(counters); mongo.NotFound(err) {
		return nil, errors.Wrapf(model.ErrTweetNotFound, "tweet `%s`", id.Hex())
	} else if err != nil {
		return nil, errors.Wrapf(err, "increase `%s` of tweet `%s`", field, id.Hex())
	}

	return counters, nil
}

// InsertTweet insert new tweet, set id and timestamps
func (d *Tweets) InsertTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	now := gutils.Clock.GetUTCNow()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	if tweet.Hashtags == nil {
		tweet.Hashtags = []primitive.ObjectID{}
	}
	if tweet.Mentions == nil {
		tweet.Mentions = []primitive.ObjectID{}
	}
	if tweet.Medias == nil {
		tweet.Medias = []model.Media{}
	}

	if _, err := d.GetTweetCol().InsertOne(ctx, tweet); err != nil {
		return nil, errors.Wrap(err, "insert tweet")
	}

	d.logger.Debug("insert tweet",
		zap.String("id", tweet.ID.Hex()),
		zap.String("type", tweet.Type.String()))
	return tweet, nil
}

// UpsertHashtags ensure every name has a hashtag document,
// return hashtags in the order of names
func (d *Tweets) UpsertHashtags(ctx context.Context, names []string) ([]model.Hashtag, error) {
	hashtags := make([]model.Hashtag, 0, len(names))
	for _, name := range names {
		tag := model.Hashtag{}
		if err := d.GetHashtagCol().
			FindOneAndUpdate(ctx,
				bson.M{"name": name},
				bson.M{"$setOnInsert": bson.M{
					"name":       name,
					"created_at": gutils.Clock.GetUTCNow(),
				}},
				options.FindOneAndUpdate().
					SetUpsert(true).
					SetReturnDocument(options.After),
			).
			Decode(&tag); mongo.IsDuplicateKey(err) {
			if err = d.GetHashtagCol().FindOne(ctx, bson.M{"name": name}).Decode(&tag); err != nil {
				return nil, errors.Wrapf(err, "load hashtag `%s`", name)
			}
		} else if err != nil {
			return nil, errors.Wrapf(err, "upsert hashtag `%s`", name)
		}

		hashtags = append(hashtags, tag)
	}

	return hashtags, nil
}

// FindHashtags load hashtags by ids, missing ids are skipped
func (d *Tweets) FindHashtags(ctx context.Context, ids []primitive.ObjectID) ([]model.Hashtag, error) {
	hashtags := []model.Hashtag{}
	if len(ids) == 0 {
		return hashtags, nil
	}

	cur, err := d.GetHashtagCol().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find hashtags")
	}

	if err = cur.All(ctx, &hashtags); err != nil {
		return nil, errors.Wrap(err, "load hashtags")
	}

	return hashtags, nil
}
