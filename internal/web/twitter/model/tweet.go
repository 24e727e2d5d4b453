// Package model documents stored in the twitter database.
package model

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TweetType kind of tweet
type TweetType int

const (
	// TweetTypeTweet original tweet
	TweetTypeTweet TweetType = iota
	// TweetTypeRetweet retweet of parent, without content
	TweetTypeRetweet
	// TweetTypeComment reply to parent
	TweetTypeComment
	// TweetTypeQuoteTweet retweet of parent with content
	TweetTypeQuoteTweet
)

var tweetTypeNames = map[TweetType]string{
	TweetTypeTweet:      "tweet",
	TweetTypeRetweet:    "retweet",
	TweetTypeComment:    "comment",
	TweetTypeQuoteTweet: "quote_tweet",
}

// Valid is a known tweet type
func (t TweetType) Valid() bool {
	_, ok := tweetTypeNames[t]
	return ok
}

// IsChild tweet of this type must reference a parent
func (t TweetType) IsChild() bool {
	return t == TweetTypeRetweet || t == TweetTypeComment || t == TweetTypeQuoteTweet
}

func (t TweetType) String() string {
	if name, ok := tweetTypeNames[t]; ok {
		return name
	}

	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// ParseTweetType parse tweet type by number or name
func ParseTweetType(raw string) (TweetType, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		t := TweetType(n)
		return t, t.Valid()
	}

	for t, name := range tweetTypeNames {
		if name == raw {
			return t, true
		}
	}

	return 0, false
}

// Audience who can see the tweet
type Audience int

const (
	// AudienceEveryone public tweet
	AudienceEveryone Audience = iota
	// AudienceTwitterCircle only the author's circle
	AudienceTwitterCircle
	// AudienceFollowersOnly only the author's followers
	AudienceFollowersOnly
)

// Valid is a known audience
func (a Audience) Valid() bool {
	return a >= AudienceEveryone && a <= AudienceFollowersOnly
}

// MediaType kind of attached media
type MediaType int

const (
	// MediaTypeImage image
	MediaTypeImage MediaType = iota
	// MediaTypeVideo video
	MediaTypeVideo
	// MediaTypeHLS hls video stream
	MediaTypeHLS
)

// Valid is a known media type
func (m MediaType) Valid() bool {
	return m >= MediaTypeImage && m <= MediaTypeHLS
}

// Media attachment produced by the upload pipeline, stored as-is
type Media struct {
	URL  string    `bson:"url" json:"url"`
	Type MediaType `bson:"type" json:"type"`
}

// Tweet document in tweets collection
//
// Only view counters and updated_at change after insert.
type Tweet struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Type       TweetType            `bson:"type" json:"type"`
	Audience   Audience             `bson:"audience" json:"audience"`
	Content    string               `bson:"content" json:"content"`
	ParentID   *primitive.ObjectID  `bson:"parent_id" json:"parent_id"`
	Hashtags   []primitive.ObjectID `bson:"hashtags" json:"hashtags"`
	Mentions   []primitive.ObjectID `bson:"mentions" json:"mentions"`
	Medias     []Media              `bson:"media" json:"media"`
	GuestViews int64                `bson:"guest_views" json:"guest_views"`
	UserViews  int64                `bson:"user_views" json:"user_views"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at" json:"updated_at"`
}

// Hashtag document in hashtags collection
type Hashtag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
