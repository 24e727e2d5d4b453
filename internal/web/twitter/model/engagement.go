package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Counters engagement counted at read time, never stored on tweet
type Counters struct {
	Likes        int64 `json:"likes"`
	Bookmarks    int64 `json:"bookmarks"`
	RetweetCount int64 `json:"retweet_count"`
	CommentCount int64 `json:"comment_count"`
	QuoteCount   int64 `json:"quote_count"`
}

// AddChild count a child tweet of type t, non-child types are ignored
func (c *Counters) AddChild(t TweetType, n int64) {
	switch t {
	case TweetTypeRetweet:
		c.RetweetCount += n
	case TweetTypeComment:
		c.CommentCount += n
	case TweetTypeQuoteTweet:
		c.QuoteCount += n
	}
}

// Mention summary of a mentioned user
type Mention struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}

// DecoratedTweet tweet merged with engagement counters,
// hashtag and mention ids are expanded to documents
type DecoratedTweet struct {
	Tweet
	Hashtags []Hashtag `json:"hashtags"`
	Mentions []Mention `json:"mentions"`
	Counters
}

// ViewCounters view counters after an increment
type ViewCounters struct {
	GuestViews int64     `bson:"guest_views" json:"guest_views"`
	UserViews  int64     `bson:"user_views" json:"user_views"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// MergeViews overwrite view counters of decorated tweet
func (t *DecoratedTweet) MergeViews(v *ViewCounters) {
	t.GuestViews = v.GuestViews
	t.UserViews = v.UserViews
	t.UpdatedAt = v.UpdatedAt
}
