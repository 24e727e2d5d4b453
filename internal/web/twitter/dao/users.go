package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/db/mongo"
)

var userProjection = bson.M{
	"name":           1,
	"username":       1,
	"email":          1,
	"verify":         1,
	"twitter_circle": 1,
}

// GetUser load user by id
func (d *Tweets) GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user := new(model.User)
	if err := d.GetUserCol().
		FindOne(ctx, bson.M{"_id": id},
			options.FindOne().SetProjection(userProjection)).
		Decode(user); mongo.NotFound(err) {
		return nil, errors.Wrapf(model.ErrUserNotFound, "user `%s`", id.Hex())
	} else if err != nil {
		return nil, errors.Wrapf(err, "load user `%s`", id.Hex())
	}

	return user, nil
}

// GetUsers load users by ids, missing ids are skipped
func (d *Tweets) GetUsers(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	users := []*model.User{}
	if len(ids) == 0 {
		return users, nil
	}

	cur, err := d.GetUserCol().
		Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetProjection(userProjection))
	if err != nil {
		return nil, errors.Wrap(err, "find users")
	}

	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "load users")
	}

	return users, nil
}

// IsFollowing follower follows followed
func (d *Tweets) IsFollowing(ctx context.Context, follower, followed primitive.ObjectID) (bool, error) {
	n, err := d.GetFollowerCol().
		CountDocuments(ctx,
			bson.M{"user_id": follower, "followed_user_id": followed},
			options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrapf(err, "check `%s` follows `%s`", follower.Hex(), followed.Hex())
	}

	return n > 0, nil
}

// FollowedUserIDs ids of every user uid follows
func (d *Tweets) FollowedUserIDs(ctx context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := d.GetFollowerCol().
		Find(ctx, bson.M{"user_id": uid},
			options.Find().SetProjection(bson.M{"followed_user_id": 1}))
	if err != nil {
		return nil, errors.Wrapf(err, "find followed users of `%s`", uid.Hex())
	}

	var docs []model.Follower
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "load followed users of `%s`", uid.Hex())
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.FollowedUserID)
	}

	return ids, nil
}

// CircleGrantorIDs ids of non-banned users whose twitter circle contains uid
func (d *Tweets) CircleGrantorIDs(ctx context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := d.GetUserCol().
		Find(ctx,
			bson.M{
				"twitter_circle": uid,
				"verify":         bson.M{"$ne": model.UserVerifyStatusBanned},
			},
			options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrapf(err, "find circle grantors of `%s`", uid.Hex())
	}

	var users []model.User
	if err = cur.All(ctx, &users); err != nil {
		return nil, errors.Wrapf(err, "load circle grantors of `%s`", uid.Hex())
	}

	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	return ids, nil
}
