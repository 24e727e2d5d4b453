package model

import (
	"encoding/json"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTweetType(t *testing.T) {
	for raw, expect := range map[string]TweetType{
		"0":            TweetTypeTweet,
		"2":            TweetTypeComment,
		"Retweet":      TweetTypeRetweet,
		" quote_tweet": TweetTypeQuoteTweet,
	} {
		got, ok := ParseTweetType(raw)
		require.True(t, ok, raw)
		require.Equal(t, expect, got, raw)
	}

	for _, raw := range []string{"", "4", "-1", "reply"} {
		_, ok := ParseTweetType(raw)
		require.False(t, ok, raw)
	}
}

func TestAudienceScope_Allows(t *testing.T) {
	author := primitive.NewObjectID()
	anonymous := &AudienceScope{}

	require.True(t, anonymous.Allows(&Tweet{UserID: author, Audience: AudienceEveryone}))
	require.False(t, anonymous.Allows(&Tweet{UserID: author, Audience: AudienceTwitterCircle}))
	require.False(t, anonymous.Allows(&Tweet{UserID: author, Audience: AudienceFollowersOnly}))

	uid := primitive.NewObjectID()
	scope := &AudienceScope{
		Requester:       &uid,
		CircleAuthors:   map[primitive.ObjectID]struct{}{author: {}},
		FollowedAuthors: map[primitive.ObjectID]struct{}{},
	}
	require.True(t, scope.Allows(&Tweet{UserID: author, Audience: AudienceTwitterCircle}))
	require.False(t, scope.Allows(&Tweet{UserID: author, Audience: AudienceFollowersOnly}))
	require.False(t, scope.Allows(&Tweet{UserID: author, Audience: Audience(9)}))
}

func TestCounters_AddChild(t *testing.T) {
	var c Counters
	c.AddChild(TweetTypeRetweet, 1)
	c.AddChild(TweetTypeComment, 2)
	c.AddChild(TweetTypeQuoteTweet, 3)
	c.AddChild(TweetTypeTweet, 100)
	require.Equal(t, Counters{RetweetCount: 1, CommentCount: 2, QuoteCount: 3}, c)
}

func TestDecoratedTweetJSON(t *testing.T) {
	tag := Hashtag{ID: primitive.NewObjectID(), Name: "golang"}
	dt := &DecoratedTweet{
		Tweet: Tweet{
			ID:       primitive.NewObjectID(),
			Content:  "hello",
			Hashtags: []primitive.ObjectID{tag.ID},
		},
		Hashtags: []Hashtag{tag},
		Counters: Counters{Likes: 3, CommentCount: 2},
	}

	data, err := json.Marshal(dt)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, "hello", out["content"])
	require.EqualValues(t, 3, out["likes"])
	require.EqualValues(t, 2, out["comment_count"])
	hashtags := out["hashtags"].([]any)
	require.Len(t, hashtags, 1)
	require.Equal(t, "golang", hashtags[0].(map[string]any)["name"])
}

func TestAsError(t *testing.T) {
	err := errors.Wrap(ErrTweetNotFound, "load tweet")
	e, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, ErrKindNotFound, e.Kind)
	require.True(t, IsKind(err, ErrKindNotFound))
	require.False(t, IsKind(errors.New("boom"), ErrKindNotFound))
}
