package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/metrics"
)

// RecordView count one read of tweet, guest_views for anonymous requester
// and user_views otherwise. Concurrent views are never lost.
func (s *Twitter) RecordView(ctx context.Context,
	requester *primitive.ObjectID, tweetID primitive.ObjectID) (*model.ViewCounters, error) {
	field := dao.ViewFieldUser
	if requester == nil {
		field = dao.ViewFieldGuest
	}

	views, err := s.gw.IncrementViews(ctx, tweetID, field)
	if err != nil {
		return nil, errors.Wrapf(err, "record view of tweet `%s`", tweetID.Hex())
	}

	metrics.TweetViews.WithLabelValues(string(field)).Inc()
	s.loggerFrom(ctx).Debug("record view",
		zap.String("tweet", tweetID.Hex()),
		zap.String("field", string(field)),
		zap.Int64("guest_views", views.GuestViews),
		zap.Int64("user_views", views.UserViews))
	return views, nil
}
