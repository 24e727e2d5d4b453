package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

// Decorate count likes, bookmarks and children of every tweet in ids.
// Every id gets an entry, ids without engagement get zero counters.
func (s *Twitter) Decorate(ctx context.Context,
	ids []primitive.ObjectID) (map[primitive.ObjectID]*model.Counters, error) {
	counters := make(map[primitive.ObjectID]*model.Counters, len(ids))
	keys := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := counters[id]; ok {
			continue
		}

		counters[id] = new(model.Counters)
		keys = append(keys, id)
	}
	if len(keys) == 0 {
		return counters, nil
	}

	var (
		pool                   errgroup.Group
		likes, marks, children []dao.GroupCount
	)
	pool.Go(func() (err error) {
		if likes, err = s.gw.CountGroupedBy(ctx, &dao.GroupCountQuery{
			Collection: dao.ColLikes,
			KeyField:   "tweet_id",
			Keys:       keys,
		}); err != nil {
			return errors.Wrap(err, "count likes")
		}

		return nil
	})
	pool.Go(func() (err error) {
		if marks, err = s.gw.CountGroupedBy(ctx, &dao.GroupCountQuery{
			Collection: dao.ColBookmarks,
			KeyField:   "tweet_id",
			Keys:       keys,
		}); err != nil {
			return errors.Wrap(err, "count bookmarks")
		}

		return nil
	})
	pool.Go(func() (err error) {
		if children, err = s.gw.CountGroupedBy(ctx, &dao.GroupCountQuery{
			Collection:     dao.ColTweets,
			KeyField:       "parent_id",
			Keys:           keys,
			PartitionField: "type",
		}); err != nil {
			return errors.Wrap(err, "count children")
		}

		return nil
	})
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	for _, g := range likes {
		if c, ok := counters[g.Key]; ok {
			c.Likes += g.Count
		}
	}
	for _, g := range marks {
		if c, ok := counters[g.Key]; ok {
			c.Bookmarks += g.Count
		}
	}
	for _, g := range children {
		if c, ok := counters[g.Key]; ok {
			c.AddChild(model.TweetType(g.Partition), g.Count)
		}
	}

	for id, c := range counters {
		if c.Likes < 0 || c.Bookmarks < 0 ||
			c.RetweetCount < 0 || c.CommentCount < 0 || c.QuoteCount < 0 {
			return nil, errors.Errorf("%s of tweet `%s`", model.MsgInvalidCounterState, id.Hex())
		}
	}

	return counters, nil
}

// DecorateTweets merge counters into tweets and expand hashtags and mentions,
// output keeps the order of tweets
func (s *Twitter) DecorateTweets(ctx context.Context, tweets []*model.Tweet) ([]*model.DecoratedTweet, error) {
	decorated := make([]*model.DecoratedTweet, 0, len(tweets))
	if len(tweets) == 0 {
		return decorated, nil
	}

	var tweetIDs, tagIDs, userIDs []primitive.ObjectID
	for _, t := range tweets {
		tweetIDs = append(tweetIDs, t.ID)
		tagIDs = append(tagIDs, t.Hashtags...)
		userIDs = append(userIDs, t.Mentions...)
	}

	var (
		pool     errgroup.Group
		counters map[primitive.ObjectID]*model.Counters
		tags     []model.Hashtag
		users    []*model.User
	)
	pool.Go(func() (err error) {
		counters, err = s.Decorate(ctx, tweetIDs)
		return err
	})
	pool.Go(func() (err error) {
		if tags, err = s.gw.FindHashtags(ctx, uniqueIDs(tagIDs)); err != nil {
			return errors.Wrap(err, "load hashtags")
		}

		return nil
	})
	pool.Go(func() (err error) {
		if users, err = s.gw.GetUsers(ctx, uniqueIDs(userIDs)); err != nil {
			return errors.Wrap(err, "load mentions")
		}

		return nil
	})
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	tagByID := make(map[primitive.ObjectID]model.Hashtag, len(tags))
	for _, tag := range tags {
		tagByID[tag.ID] = tag
	}
	mentionByID := make(map[primitive.ObjectID]model.Mention, len(users))
	for _, u := range users {
		m := model.Mention{}
		if err := copier.Copy(&m, u); err != nil {
			return nil, errors.Wrapf(err, "copy mention `%s`", u.ID.Hex())
		}
		mentionByID[u.ID] = m
	}

	for _, t := range tweets {
		dt := &model.DecoratedTweet{
			Tweet:    *t,
			Hashtags: []model.Hashtag{},
			Mentions: []model.Mention{},
			Counters: *counters[t.ID],
		}
		for _, id := range t.Hashtags {
			if tag, ok := tagByID[id]; ok {
				dt.Hashtags = append(dt.Hashtags, tag)
			}
		}
		for _, id := range t.Mentions {
			if m, ok := mentionByID[id]; ok {
				dt.Mentions = append(dt.Mentions, m)
			}
		}

		decorated = append(decorated, dt)
	}

	return decorated, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
