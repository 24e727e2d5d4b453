// Package dto provides data transfer object.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

// PaginationQuery raw pagination from query string
type PaginationQuery struct {
	Limit string `form:"limit"`
	Page  string `form:"page"`
}

// Pagination validated pagination, limit in [1, 100], page starts from 1
type Pagination struct {
	Limit int
	Page  int
}

// Skip number of documents before this page
func (p Pagination) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPage ceil(total / limit)
func (p Pagination) TotalPage(total int64) int {
	if total <= 0 {
		return 0
	}

	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// TweetChildrenQuery raw query of GET /tweets/:tweet_id/children
type TweetChildrenQuery struct {
	PaginationQuery
	TweetType string `form:"tweet_type"`
}

// TweetChildrenArgs validated children query
type TweetChildrenArgs struct {
	Pagination
	ParentID  primitive.ObjectID
	TweetType model.TweetType
}

// NewFeedArgs validated new feed query
type NewFeedArgs struct {
	Pagination
}

// MediaRequest media in create tweet body
type MediaRequest struct {
	URL  string `json:"url"`
	Type *int   `json:"type"`
}

// CreateTweetRequest raw body of POST /tweets
type CreateTweetRequest struct {
	Type     *int           `json:"type"`
	Audience *int           `json:"audience"`
	Content  string         `json:"content"`
	ParentID *string        `json:"parent_id"`
	Hashtags []string       `json:"hashtags"`
	Mentions []string       `json:"mentions"`
	Medias   []MediaRequest `json:"media"`
}

// CreateTweetArgs validated create tweet body,
// parent existence is checked by the service
type CreateTweetArgs struct {
	Type     model.TweetType
	Audience model.Audience
	Content  string
	ParentID *primitive.ObjectID
	Hashtags []string
	Mentions []primitive.ObjectID
	Medias   []model.Media
}

// TweetIDRequest body of like and bookmark
type TweetIDRequest struct {
	TweetID string `json:"tweet_id"`
}

// TweetPage paginated tweets
type TweetPage struct {
	Tweets    []*model.DecoratedTweet `json:"tweets"`
	Limit     int                     `json:"limit"`
	Page      int                     `json:"page"`
	TotalPage int                     `json:"total_page"`
}
