package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/dto"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/metrics"
)

const (
	viewChildren = "children"
	viewNewFeed  = "new_feed"
)

// GetTweetChildren load one page of children of tweetID with the given type,
// newest first. Parent must be readable by requester.
//
// Visibility is applied before counting, so total_page only counts
// children the requester can read.
func (s *Twitter) GetTweetChildren(ctx context.Context,
	requester *primitive.ObjectID, tweetID string, q *dto.TweetChildrenQuery) (*dto.TweetPage, error) {
	defer metrics.ObserveFeed(viewChildren, gutils.Clock.GetUTCNow())

	args, err := sanitizeTweetChildrenQuery(tweetID, q)
	if err != nil {
		return nil, err
	}

	parent, err := s.gw.GetTweet(ctx, args.ParentID)
	if err != nil {
		return nil, errors.Wrap(err, "load parent")
	}
	if _, err = s.CanView(ctx, requester, parent); err != nil {
		return nil, errors.Wrap(err, "check parent visibility")
	}

	scope, err := s.Scope(ctx, requester)
	if err != nil {
		return nil, errors.Wrap(err, "resolve scope")
	}

	tweetType := args.TweetType
	tweets, total, err := s.gw.FindTweetPage(ctx, &dao.TweetPageQuery{
		ParentID: &args.ParentID,
		Type:     &tweetType,
		Scope:    scope,
		Skip:     args.Skip(),
		Limit:    int64(args.Limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "load children")
	}

	return s.assemblePage(ctx, viewChildren, scope, args.Pagination, tweets, total)
}

// GetNewFeed load one page of tweets written by requester
// or users requester follows, newest first.
func (s *Twitter) GetNewFeed(ctx context.Context,
	requester *primitive.ObjectID, q *dto.PaginationQuery) (*dto.TweetPage, error) {
	defer metrics.ObserveFeed(viewNewFeed, gutils.Clock.GetUTCNow())

	if requester == nil {
		return nil, model.ErrAccessTokenRequired
	}

	p, err := sanitizePagination(*q)
	if err != nil {
		return nil, err
	}

	scope, err := s.Scope(ctx, requester)
	if err != nil {
		return nil, errors.Wrap(err, "resolve scope")
	}

	authors := uniqueIDs(append([]primitive.ObjectID{*requester}, scope.Following...))
	tweets, total, err := s.gw.FindTweetPage(ctx, &dao.TweetPageQuery{
		AuthorIDs: authors,
		Scope:     scope,
		Skip:      p.Skip(),
		Limit:     int64(p.Limit),
	})
	if err != nil {
		return nil, errors.Wrap(err, "load feed")
	}

	return s.assemblePage(ctx, viewNewFeed, scope, p, tweets, total)
}

func (s *Twitter) assemblePage(ctx context.Context, view string,
	scope *model.AudienceScope, p dto.Pagination,
	tweets []*model.Tweet, total int64) (*dto.TweetPage, error) {
	visible := s.filterVisible(ctx, view, scope, tweets)
	decorated, err := s.DecorateTweets(ctx, visible)
	if err != nil {
		return nil, errors.Wrap(err, "decorate tweets")
	}

	s.loggerFrom(ctx).Debug("assemble page",
		zap.String("view", view),
		zap.Int("page", p.Page),
		zap.Int("limit", p.Limit),
		zap.Int("got", len(decorated)),
		zap.Int64("total", total))
	return &dto.TweetPage{
		Tweets:    decorated,
		Limit:     p.Limit,
		Page:      p.Page,
		TotalPage: p.TotalPage(total),
	}, nil
}
