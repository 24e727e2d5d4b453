package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/metrics"
)

// loggerFrom prefer the request logger carried by gin context
func (s *Twitter) loggerFrom(ctx context.Context) glog.Logger {
	if _, ok := gmw.GetGinCtxFromStdCtx(ctx); ok {
		return gmw.GetLogger(ctx).Named("twitter")
	}

	return s.logger
}

// CanView check whether requester may read tweet, requester nil means anonymous.
//
// Returns ErrAccessTokenRequired for anonymous requester on restricted tweet,
// ErrUserNotFound when author is missing or banned,
// ErrTweetIsNotPublic when requester is outside of the audience.
func (s *Twitter) CanView(ctx context.Context,
	requester *primitive.ObjectID, tweet *model.Tweet) (bool, error) {
	if tweet.Audience == model.AudienceEveryone {
		return true, nil
	}
	if !tweet.Audience.Valid() {
		return false, errors.Errorf("tweet `%s` got unknown audience %d",
			tweet.ID.Hex(), tweet.Audience)
	}

	if requester == nil {
		return false, model.ErrAccessTokenRequired
	}

	author, err := s.gw.GetUser(ctx, tweet.UserID)
	if err != nil {
		return false, errors.Wrapf(err, "load author of tweet `%s`", tweet.ID.Hex())
	}
	if author.IsBanned() {
		return false, errors.Wrapf(model.ErrUserNotFound, "author `%s` is banned", author.ID.Hex())
	}

	if *requester == author.ID {
		return true, nil
	}

	switch tweet.Audience {
	case model.AudienceTwitterCircle:
		if author.InCircle(*requester) {
			return true, nil
		}
	case model.AudienceFollowersOnly:
		following, err := s.gw.IsFollowing(ctx, *requester, author.ID)
		if err != nil {
			return false, errors.Wrap(err, "check follower")
		}
		if following {
			return true, nil
		}
	}

	return false, model.ErrTweetIsNotPublic
}

// Scope resolve every audience requester may read, once per request.
// Anonymous scope only reads Everyone tweets.
func (s *Twitter) Scope(ctx context.Context, requester *primitive.ObjectID) (*model.AudienceScope, error) {
	scope := &model.AudienceScope{
		Requester:       requester,
		CircleAuthors:   map[primitive.ObjectID]struct{}{},
		FollowedAuthors: map[primitive.ObjectID]struct{}{},
	}
	if requester == nil {
		return scope, nil
	}

	var (
		pool      errgroup.Group
		grantors  []primitive.ObjectID
		following []primitive.ObjectID
		authors   []*model.User
	)
	pool.Go(func() (err error) {
		if grantors, err = s.gw.CircleGrantorIDs(ctx, *requester); err != nil {
			return errors.Wrap(err, "load circle grantors")
		}

		return nil
	})
	pool.Go(func() (err error) {
		if following, err = s.gw.FollowedUserIDs(ctx, *requester); err != nil {
			return errors.Wrap(err, "load followed users")
		}

		ids := append([]primitive.ObjectID{*requester}, following...)
		if authors, err = s.gw.GetUsers(ctx, ids); err != nil {
			return errors.Wrap(err, "load followed authors")
		}

		return nil
	})
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	scope.Following = following
	for _, id := range grantors {
		scope.CircleAuthors[id] = struct{}{}
	}
	for _, u := range authors {
		if u.IsBanned() {
			continue
		}

		if u.ID == *requester {
			scope.CircleAuthors[u.ID] = struct{}{}
		}
		scope.FollowedAuthors[u.ID] = struct{}{}
	}

	return scope, nil
}

// filterVisible keep tweets allowed by scope, order preserved
func (s *Twitter) filterVisible(ctx context.Context, view string,
	scope *model.AudienceScope, tweets []*model.Tweet) []*model.Tweet {
	visible := make([]*model.Tweet, 0, len(tweets))
	for _, t := range tweets {
		if scope.Allows(t) {
			visible = append(visible, t)
			continue
		}

		droppedVisibility(view)
		s.loggerFrom(ctx).Warn("drop tweet outside of scope",
			zapTweet(t)...)
	}

	return visible
}

func droppedVisibility(view string) {
	metrics.VisibilityDropped.WithLabelValues(view).Inc()
}

func zapTweet(t *model.Tweet) []zap.Field {
	return []zap.Field{
		zap.String("tweet", t.ID.Hex()),
		zap.String("author", t.UserID.Hex()),
		zap.Int("audience", int(t.Audience)),
	}
}
