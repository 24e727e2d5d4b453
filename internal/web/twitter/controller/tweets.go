package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dto"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/auth"
)

// success messages
const (
	MsgGetTweetSuccess         = "Get tweet successfully"
	MsgGetTweetChildrenSuccess = "Get tweet children successfully"
	MsgGetNewFeedsSuccess      = "Get new feeds successfully"
	MsgCreateTweetSuccess      = "Create tweet successfully"
	MsgLikeSuccess             = "Like successfully"
	MsgUnlikeSuccess           = "Unlike successfully"
	MsgBookmarkSuccess         = "Bookmark successfully"
	MsgUnbookmarkSuccess       = "Unbookmark successfully"
)

// Service twitter operations served over http, implemented by *service.Twitter
type Service interface {
	GetTweet(ctx context.Context, requester *primitive.ObjectID, tweetID string) (*model.DecoratedTweet, error)
	GetTweetChildren(ctx context.Context, requester *primitive.ObjectID,
		tweetID string, q *dto.TweetChildrenQuery) (*dto.TweetPage, error)
	GetNewFeed(ctx context.Context, requester *primitive.ObjectID, q *dto.PaginationQuery) (*dto.TweetPage, error)
	CreateTweet(ctx context.Context, author primitive.ObjectID, req *dto.CreateTweetRequest) (*model.DecoratedTweet, error)
	Like(ctx context.Context, uid primitive.ObjectID, tweetID string) (*model.Like, error)
	Unlike(ctx context.Context, uid primitive.ObjectID, tweetID string) (bool, error)
	Bookmark(ctx context.Context, uid primitive.ObjectID, tweetID string) (*model.Bookmark, error)
	Unbookmark(ctx context.Context, uid primitive.ObjectID, tweetID string) (bool, error)
}

// Tweets http handlers of tweets, likes and bookmarks
type Tweets struct {
	svc Service
}

// New create tweets controller
func New(svc Service) *Tweets {
	return &Tweets{svc: svc}
}

// Routes middlewares used by RegisterRoutes
type Routes struct {
	// Optional attach identity if present
	Optional gin.HandlerFunc
	// Required reject anonymous requests
	Required gin.HandlerFunc
	// Throttle limit write requests, may be nil
	Throttle gin.HandlerFunc
}

// RegisterRoutes register twitter routes on r
func (t *Tweets) RegisterRoutes(r gin.IRouter, mw Routes) {
	writes := []gin.HandlerFunc{mw.Required}
	if mw.Throttle != nil {
		writes = append(writes, mw.Throttle)
	}
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), h)
	}

	tweets := r.Group("/tweets")
	tweets.GET("/feed", mw.Required, t.GetNewFeed)
	tweets.GET("/:tweet_id", mw.Optional, t.GetTweet)
	tweets.GET("/:tweet_id/children", mw.Optional, t.GetTweetChildren)
	tweets.POST("", write(t.CreateTweet)...)

	r.GET("/feed", mw.Required, t.GetNewFeed)

	r.POST("/likes", write(t.Like)...)
	r.DELETE("/likes/tweets/:tweet_id", write(t.Unlike)...)
	r.POST("/bookmarks", write(t.Bookmark)...)
	r.DELETE("/bookmarks/tweets/:tweet_id", write(t.Unbookmark)...)
}

// requiredUserID requester of routes behind auth.Required
func requiredUserID(c *gin.Context) (primitive.ObjectID, bool) {
	uid := auth.GetUserID(c)
	if uid == nil {
		RespondError(c, model.ErrAccessTokenRequired)
		return primitive.NilObjectID, false
	}

	return *uid, true
}

// GetTweet GET /tweets/:tweet_id
func (t *Tweets) GetTweet(c *gin.Context) {
	tweet, err := t.svc.GetTweet(c, auth.GetUserID(c), c.Param("tweet_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgGetTweetSuccess, tweet)
}

// GetTweetChildren GET /tweets/:tweet_id/children?tweet_type=&limit=&page=
func (t *Tweets) GetTweetChildren(c *gin.Context) {
	q := new(dto.TweetChildrenQuery)
	if err := c.ShouldBindQuery(q); err != nil {
		AbortWithMessage(c, http.StatusUnprocessableEntity, msgInvalidRequestBody)
		return
	}

	page, err := t.svc.GetTweetChildren(c, auth.GetUserID(c), c.Param("tweet_id"), q)
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgGetTweetChildrenSuccess, page)
}

// GetNewFeed GET /tweets/feed?limit=&page=
func (t *Tweets) GetNewFeed(c *gin.Context) {
	q := new(dto.PaginationQuery)
	if err := c.ShouldBindQuery(q); err != nil {
		AbortWithMessage(c, http.StatusUnprocessableEntity, msgInvalidRequestBody)
		return
	}

	page, err := t.svc.GetNewFeed(c, auth.GetUserID(c), q)
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgGetNewFeedsSuccess, page)
}

// CreateTweet POST /tweets
func (t *Tweets) CreateTweet(c *gin.Context) {
	uid, ok := requiredUserID(c)
	if !ok {
		return
	}

	req := new(dto.CreateTweetRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		AbortWithMessage(c, http.StatusUnprocessableEntity, msgInvalidRequestBody)
		return
	}

	tweet, err := t.svc.CreateTweet(c, uid, req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgCreateTweetSuccess, tweet)
}

// Like POST /likes {"tweet_id": ""}
func (t *Tweets) Like(c *gin.Context) {
	uid, ok := requiredUserID(c)
	if !ok {
		return
	}

	req := new(dto.TweetIDRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		AbortWithMessage(c, http.StatusUnprocessableEntity, msgInvalidRequestBody)
		return
	}

	like, err := t.svc.Like(c, uid, req.TweetID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgLikeSuccess, like)
}

// Unlike DELETE /likes/tweets/:tweet_id
func (t *Tweets) Unlike(c *gin.Context) {
	uid, ok := requiredUserID(c)
	if !ok {
		return
	}

	deleted, err := t.svc.Unlike(c, uid, c.Param("tweet_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgUnlikeSuccess, gin.H{"deleted": deleted})
}

// Bookmark POST /bookmarks {"tweet_id": ""}
func (t *Tweets) Bookmark(c *gin.Context) {
	uid, ok := requiredUserID(c)
	if !ok {
		return
	}

	req := new(dto.TweetIDRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		AbortWithMessage(c, http.StatusUnprocessableEntity, msgInvalidRequestBody)
		return
	}

	bookmark, err := t.svc.Bookmark(c, uid, req.TweetID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgBookmarkSuccess, bookmark)
}

// Unbookmark DELETE /bookmarks/tweets/:tweet_id
func (t *Tweets) Unbookmark(c *gin.Context) {
	uid, ok := requiredUserID(c)
	if !ok {
		return
	}

	deleted, err := t.svc.Unbookmark(c, uid, c.Param("tweet_id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	Respond(c, http.StatusOK, MsgUnbookmarkSuccess, gin.H{"deleted": deleted})
}
