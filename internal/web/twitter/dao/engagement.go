package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/db/mongo"
)

// CountGroupedBy count documents grouped by key, and by partition if set.
// keys without documents are absent from result.
func (d *Tweets) CountGroupedBy(ctx context.Context, q *GroupCountQuery) ([]GroupCount, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	if len(q.Keys) == 0 {
		return []GroupCount{}, nil
	}

	cur, err := d.db.GetCol(q.Collection).Aggregate(ctx, q.pipeline())
	if err != nil {
		return nil, errors.Wrapf(err, "aggregate `%s` by `%s`", q.Collection, q.KeyField)
	}

	var docs []struct {
		ID struct {
			Key       primitive.ObjectID `bson:"key"`
			Partition int                `bson:"partition"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "load counts of `%s`", q.Collection)
	}

	counts := make([]GroupCount, 0, len(docs))
	for _, doc := range docs {
		counts = append(counts, GroupCount{
			Key:       doc.ID.Key,
			Partition: doc.ID.Partition,
			Count:     doc.Count,
		})
	}

	return counts, nil
}

// UpsertLike like tweet, liking twice keeps one like
func (d *Tweets) UpsertLike(ctx context.Context, uid, tweetID primitive.ObjectID) (*model.Like, error) {
	like := new(model.Like)
	if err := d.upsertUserTweet(ctx, ColLikes, uid, tweetID, like); err != nil {
		return nil, errors.Wrap(err, "upsert like")
	}

	return like, nil
}

// DeleteLike unlike tweet, return whether a like was removed
func (d *Tweets) DeleteLike(ctx context.Context, uid, tweetID primitive.ObjectID) (bool, error) {
	deleted, err := d.deleteUserTweet(ctx, ColLikes, uid, tweetID)
	if err != nil {
		return false, errors.Wrap(err, "delete like")
	}

	return deleted, nil
}

// UpsertBookmark bookmark tweet, bookmarking twice keeps one bookmark
func (d *Tweets) UpsertBookmark(ctx context.Context, uid, tweetID primitive.ObjectID) (*model.Bookmark, error) {
	bookmark := new(model.Bookmark)
	if err := d.upsertUserTweet(ctx, ColBookmarks, uid, tweetID, bookmark); err != nil {
		return nil, errors.Wrap(err, "upsert bookmark")
	}

	return bookmark, nil
}

// DeleteBookmark remove bookmark, return whether a bookmark was removed
func (d *Tweets) DeleteBookmark(ctx context.Context, uid, tweetID primitive.ObjectID) (bool, error) {
	deleted, err := d.deleteUserTweet(ctx, ColBookmarks, uid, tweetID)
	if err != nil {
		return false, errors.Wrap(err, "delete bookmark")
	}

	return deleted, nil
}

func (d *Tweets) upsertUserTweet(ctx context.Context, col string,
	uid, tweetID primitive.ObjectID, out any) error {
	filter := bson.M{"user_id": uid, "tweet_id": tweetID}
	if err := d.db.GetCol(col).
		FindOneAndUpdate(ctx,
			filter,
			bson.M{"$setOnInsert": bson.M{
				"user_id":    uid,
				"tweet_id":   tweetID,
				"created_at": gutils.Clock.GetUTCNow(),
			}},
			options.FindOneAndUpdate().
				SetUpsert(true).
				SetReturnDocument(options.After),
		).
		Decode(out); mongo.IsDuplicateKey(err) {
		// concurrent upsert won the insert
		if err = d.db.GetCol(col).FindOne(ctx, filter).Decode(out); err != nil {
			return errors.Wrapf(err, "load `%s` of user `%s` on tweet `%s`",
				col, uid.Hex(), tweetID.Hex())
		}
	} else if err != nil {
		return errors.Wrapf(err, "upsert `%s` of user `%s` on tweet `%s`",
			col, uid.Hex(), tweetID.Hex())
	}

	return nil
}

func (d *Tweets) deleteUserTweet(ctx context.Context, col string,
	uid, tweetID primitive.ObjectID) (bool, error) {
	ret, err := d.db.GetCol(col).
		DeleteOne(ctx, bson.M{"user_id": uid, "tweet_id": tweetID})
	if err != nil {
		return false, errors.Wrapf(err, "delete `%s` of user `%s` on tweet `%s`",
			col, uid.Hex(), tweetID.Hex())
	}

	return ret.DeletedCount > 0, nil
}
