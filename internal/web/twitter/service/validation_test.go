package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dto"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func requireInvalid(t *testing.T, err error, msg string) {
	t.Helper()
	e, ok := model.AsError(err)
	require.True(t, ok, err)
	require.Equal(t, model.ErrKindInvalidArgument, e.Kind)
	require.Equal(t, msg, e.Message)
}

func TestSanitizePagination(t *testing.T) {
	p, err := sanitizePagination(dto.PaginationQuery{})
	require.NoError(t, err)
	require.Equal(t, dto.Pagination{Limit: 10, Page: 1}, p)

	p, err = sanitizePagination(dto.PaginationQuery{Limit: "100", Page: "3"})
	require.NoError(t, err)
	require.Equal(t, dto.Pagination{Limit: 100, Page: 3}, p)

	for _, limit := range []string{"0", "101", "-1", "ten", "1.5"} {
		_, err = sanitizePagination(dto.PaginationQuery{Limit: limit})
		requireInvalid(t, err, model.MsgLimitMustBeBetween1And100)
	}

	for _, page := range []string{"0", "-2", "first"} {
		_, err = sanitizePagination(dto.PaginationQuery{Page: page})
		requireInvalid(t, err, model.MsgPageMustBeAPositiveInteger)
	}
}

func TestSanitizeTweetChildrenQuery(t *testing.T) {
	id := primitive.NewObjectID()

	args, err := sanitizeTweetChildrenQuery(id.Hex(), &dto.TweetChildrenQuery{})
	require.NoError(t, err)
	require.Equal(t, id, args.ParentID)
	require.Equal(t, model.TweetTypeComment, args.TweetType)

	args, err = sanitizeTweetChildrenQuery(id.Hex(), &dto.TweetChildrenQuery{TweetType: "1"})
	require.NoError(t, err)
	require.Equal(t, model.TweetTypeRetweet, args.TweetType)

	_, err = sanitizeTweetChildrenQuery("not-an-id", &dto.TweetChildrenQuery{})
	requireInvalid(t, err, model.MsgInvalidTweetID)

	_, err = sanitizeTweetChildrenQuery(id.Hex(), &dto.TweetChildrenQuery{TweetType: "7"})
	requireInvalid(t, err, model.MsgInvalidType)

	_, err = sanitizeTweetChildrenQuery(id.Hex(), &dto.TweetChildrenQuery{
		PaginationQuery: dto.PaginationQuery{Limit: "500"},
	})
	requireInvalid(t, err, model.MsgLimitMustBeBetween1And100)
}

func TestSanitizeCreateTweet(t *testing.T) {
	parent := primitive.NewObjectID()
	mention := primitive.NewObjectID()

	args, err := sanitizeCreateTweet(&dto.CreateTweetRequest{
		Type:     intPtr(int(model.TweetTypeTweet)),
		Audience: intPtr(int(model.AudienceEveryone)),
		Content:  "hello",
		Hashtags: []string{"#golang", "golang", "mongo"},
		Mentions: []string{mention.Hex(), mention.Hex()},
		Medias:   []dto.MediaRequest{{URL: "https://img/1.png", Type: intPtr(int(model.MediaTypeImage))}},
	})
	require.NoError(t, err)
	require.Nil(t, args.ParentID)
	require.Equal(t, []string{"golang", "mongo"}, args.Hashtags)
	require.Equal(t, []primitive.ObjectID{mention}, args.Mentions)
	require.Len(t, args.Medias, 1)

	args, err = sanitizeCreateTweet(&dto.CreateTweetRequest{
		Type:     intPtr(int(model.TweetTypeRetweet)),
		Audience: intPtr(int(model.AudienceEveryone)),
		ParentID: strPtr(parent.Hex()),
	})
	require.NoError(t, err)
	require.Equal(t, parent, *args.ParentID)

	args, err = sanitizeCreateTweet(&dto.CreateTweetRequest{
		Type:     intPtr(int(model.TweetTypeComment)),
		Audience: intPtr(int(model.AudienceTwitterCircle)),
		ParentID: strPtr(parent.Hex()),
		Mentions: []string{mention.Hex()},
	})
	require.NoError(t, err, "mentions stand in for content")
	require.Equal(t, model.AudienceTwitterCircle, args.Audience)

	for _, c := range []struct {
		name string
		req  dto.CreateTweetRequest
		msg  string
	}{
		{"missing type", dto.CreateTweetRequest{Audience: intPtr(0), Content: "x"}, model.MsgInvalidType},
		{"bad type", dto.CreateTweetRequest{Type: intPtr(9), Audience: intPtr(0), Content: "x"}, model.MsgInvalidType},
		{"bad audience", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(5), Content: "x"}, model.MsgInvalidAudience},
		{"tweet with parent", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(0), Content: "x", ParentID: strPtr(parent.Hex())}, model.MsgParentIDMustBeNull},
		{"comment without parent", dto.CreateTweetRequest{Type: intPtr(2), Audience: intPtr(0), Content: "x"}, model.MsgParentIDMustBeAValidTweetID},
		{"comment with bad parent", dto.CreateTweetRequest{Type: intPtr(2), Audience: intPtr(0), Content: "x", ParentID: strPtr("zz")}, model.MsgParentIDMustBeAValidTweetID},
		{"retweet with content", dto.CreateTweetRequest{Type: intPtr(1), Audience: intPtr(0), Content: "x", ParentID: strPtr(parent.Hex())}, model.MsgContentMustBeEmptyString},
		{"empty tweet", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(0), Content: "  "}, model.MsgContentMustBeANonEmptyString},
		{"empty hashtag", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(0), Content: "x", Hashtags: []string{"#"}}, model.MsgHashtagsMustBeAnArrayOfString},
		{"bad mention", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(0), Content: "x", Mentions: []string{"bob"}}, model.MsgMentionsMustBeAnArrayOfUserID},
		{"bad media", dto.CreateTweetRequest{Type: intPtr(0), Audience: intPtr(0), Content: "x", Medias: []dto.MediaRequest{{URL: "u", Type: intPtr(3)}}}, model.MsgMediaMustBeAnArrayOfMediaObjects},
	} {
		t.Run(c.name, func(t *testing.T) {
			req := c.req
			_, err := sanitizeCreateTweet(&req)
			requireInvalid(t, err, c.msg)
		})
	}
}
