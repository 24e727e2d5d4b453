package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserVerifyStatus account verification state
type UserVerifyStatus int

const (
	// UserVerifyStatusUnverified email not verified yet
	UserVerifyStatusUnverified UserVerifyStatus = iota
	// UserVerifyStatusVerified email verified
	UserVerifyStatusVerified
	// UserVerifyStatusBanned banned by admin
	UserVerifyStatusBanned
)

// User document in users collection, only fields used by tweets
type User struct {
	ID            primitive.ObjectID   `bson:"_id" json:"_id"`
	Name          string               `bson:"name" json:"name"`
	Username      string               `bson:"username" json:"username"`
	Email         string               `bson:"email" json:"email"`
	Verify        UserVerifyStatus     `bson:"verify" json:"verify"`
	TwitterCircle []primitive.ObjectID `bson:"twitter_circle" json:"twitter_circle"`
}

// IsBanned user is banned
func (u *User) IsBanned() bool {
	return u.Verify == UserVerifyStatusBanned
}

// InCircle uid is in user's twitter circle
func (u *User) InCircle(uid primitive.ObjectID) bool {
	for _, id := range u.TwitterCircle {
		if id == uid {
			return true
		}
	}

	return false
}

// Follower document in followers collection, user_id follows followed_user_id
type Follower struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	FollowedUserID primitive.ObjectID `bson:"followed_user_id" json:"followed_user_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Like document in likes collection, unique by (user_id, tweet_id)
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TweetID   primitive.ObjectID `bson:"tweet_id" json:"tweet_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Bookmark document in bookmarks collection, unique by (user_id, tweet_id)
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TweetID   primitive.ObjectID `bson:"tweet_id" json:"tweet_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
