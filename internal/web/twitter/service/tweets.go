package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dto"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

// GetTweet load one tweet readable by requester, record the view,
// and return it decorated with fresh view counters.
func (s *Twitter) GetTweet(ctx context.Context,
	requester *primitive.ObjectID, tweetID string) (*model.DecoratedTweet, error) {
	id, err := sanitizeTweetID(tweetID)
	if err != nil {
		return nil, err
	}

	tweet, err := s.gw.GetTweet(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load tweet")
	}
	if _, err = s.CanView(ctx, requester, tweet); err != nil {
		return nil, errors.Wrap(err, "check visibility")
	}

	views, err := s.RecordView(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	decorated, err := s.DecorateTweets(ctx, []*model.Tweet{tweet})
	if err != nil {
		return nil, errors.Wrap(err, "decorate tweet")
	}

	decorated[0].MergeViews(views)
	return decorated[0], nil
}

// CreateTweet validate and insert a tweet written by author.
// Hashtags are created on first use, parent must exist for child types.
func (s *Twitter) CreateTweet(ctx context.Context,
	author primitive.ObjectID, req *dto.CreateTweetRequest) (*model.DecoratedTweet, error) {
	args, err := sanitizeCreateTweet(req)
	if err != nil {
		return nil, err
	}

	if args.ParentID != nil {
		parent, err := s.gw.GetTweet(ctx, *args.ParentID)
		if model.IsKind(err, model.ErrKindNotFound) {
			return nil, invalidArgument(model.MsgParentIDMustBeAValidTweetID)
		} else if err != nil {
			return nil, errors.Wrap(err, "load parent")
		}

		if _, err = s.CanView(ctx, &author, parent); err != nil {
			return nil, errors.Wrap(err, "check parent visibility")
		}
	}

	tags, err := s.gw.UpsertHashtags(ctx, args.Hashtags)
	if err != nil {
		return nil, errors.Wrap(err, "upsert hashtags")
	}

	tweet := &model.Tweet{
		UserID:   author,
		Type:     args.Type,
		Audience: args.Audience,
		Content:  args.Content,
		ParentID: args.ParentID,
		Hashtags: make([]primitive.ObjectID, 0, len(tags)),
		Mentions: args.Mentions,
		Medias:   args.Medias,
	}
	for _, tag := range tags {
		tweet.Hashtags = append(tweet.Hashtags, tag.ID)
	}

	if tweet, err = s.gw.InsertTweet(ctx, tweet); err != nil {
		return nil, errors.Wrap(err, "insert tweet")
	}

	s.loggerFrom(ctx).Info("create tweet", zapTweet(tweet)...)
	decorated, err := s.DecorateTweets(ctx, []*model.Tweet{tweet})
	if err != nil {
		return nil, errors.Wrap(err, "decorate tweet")
	}

	return decorated[0], nil
}

// loadReadableTweet load tweet by raw id and check requester may read it
func (s *Twitter) loadReadableTweet(ctx context.Context,
	requester primitive.ObjectID, tweetID string) (*model.Tweet, error) {
	id, err := sanitizeTweetID(tweetID)
	if err != nil {
		return nil, err
	}

	tweet, err := s.gw.GetTweet(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load tweet")
	}
	if _, err = s.CanView(ctx, &requester, tweet); err != nil {
		return nil, errors.Wrap(err, "check visibility")
	}

	return tweet, nil
}

// Like like tweet, liking twice is a no-op
func (s *Twitter) Like(ctx context.Context, uid primitive.ObjectID, tweetID string) (*model.Like, error) {
	tweet, err := s.loadReadableTweet(ctx, uid, tweetID)
	if err != nil {
		return nil, err
	}

	like, err := s.gw.UpsertLike(ctx, uid, tweet.ID)
	if err != nil {
		return nil, err
	}

	s.loggerFrom(ctx).Debug("like", zap.String("user", uid.Hex()), zap.String("tweet", tweet.ID.Hex()))
	return like, nil
}

// Unlike remove like, return whether a like was removed
func (s *Twitter) Unlike(ctx context.Context, uid primitive.ObjectID, tweetID string) (bool, error) {
	id, err := sanitizeTweetID(tweetID)
	if err != nil {
		return false, err
	}

	return s.gw.DeleteLike(ctx, uid, id)
}

// Bookmark bookmark tweet, bookmarking twice is a no-op
func (s *Twitter) Bookmark(ctx context.Context, uid primitive.ObjectID, tweetID string) (*model.Bookmark, error) {
	tweet, err := s.loadReadableTweet(ctx, uid, tweetID)
	if err != nil {
		return nil, err
	}

	bookmark, err := s.gw.UpsertBookmark(ctx, uid, tweet.ID)
	if err != nil {
		return nil, err
	}

	s.loggerFrom(ctx).Debug("bookmark", zap.String("user", uid.Hex()), zap.String("tweet", tweet.ID.Hex()))
	return bookmark, nil
}

// Unbookmark remove bookmark, return whether a bookmark was removed
func (s *Twitter) Unbookmark(ctx context.Context, uid primitive.ObjectID, tweetID string) (bool, error) {
	id, err := sanitizeTweetID(tweetID)
	if err != nil {
		return false, err
	}

	return s.gw.DeleteBookmark(ctx, uid, id)
}
