// Package dao implements the Twitter database
package dao

import (
	glog "github.com/Laisky/go-utils/v6/log"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/leducanh112/Twitter-API/library/db/mongo"
)

// collection names
const (
	ColTweets    = "tweets"
	ColUsers     = "users"
	ColFollowers = "followers"
	ColLikes     = "likes"
	ColBookmarks = "bookmarks"
	ColHashtags  = "hashtags"
)

// Tweets dao of tweets and the collections tweets depend on
type Tweets struct {
	logger glog.Logger
	db     mongo.DB
}

// New create new dao
func New(logger glog.Logger, db mongo.DB) *Tweets {
	return &Tweets{
		logger: logger,
		db:     db,
	}
}

// GetTweetCol get tweets collection
func (d *Tweets) GetTweetCol() *mongoLib.Collection {
	return d.db.GetCol(ColTweets)
}

// GetUserCol get users collection
func (d *Tweets) GetUserCol() *mongoLib.Collection {
	return d.db.GetCol(ColUsers)
}

// GetFollowerCol get followers collection
func (d *Tweets) GetFollowerCol() *mongoLib.Collection {
	return d.db.GetCol(ColFollowers)
}

// GetLikeCol get likes collection
func (d *Tweets) GetLikeCol() *mongoLib.Collection {
	return d.db.GetCol(ColLikes)
}

// GetBookmarkCol get bookmarks collection
func (d *Tweets) GetBookmarkCol() *mongoLib.Collection {
	return d.db.GetCol(ColBookmarks)
}

// GetHashtagCol get hashtags collection
func (d *Tweets) GetHashtagCol() *mongoLib.Collection {
	return d.db.GetCol(ColHashtags)
}
