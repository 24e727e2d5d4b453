package dao

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

func TestScopeFilter(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		branches := ScopeFilter(&model.AudienceScope{})
		require.Equal(t, bson.A{
			bson.D{{Key: "audience", Value: model.AudienceEveryone}},
		}, branches)
	})

	t.Run("authenticated", func(t *testing.T) {
		uid := primitive.NewObjectID()
		grantor := primitive.NewObjectID()
		scope := &model.AudienceScope{
			Requester:       &uid,
			CircleAuthors:   map[primitive.ObjectID]struct{}{grantor: {}},
			FollowedAuthors: map[primitive.ObjectID]struct{}{uid: {}},
		}

		branches := ScopeFilter(scope)
		require.Len(t, branches, 3)
		require.Equal(t, bson.D{
			{Key: "audience", Value: model.AudienceTwitterCircle},
			{Key: "user_id", Value: bson.D{{Key: "$in", Value: []primitive.ObjectID{grantor}}}},
		}, branches[1])
		require.Equal(t, bson.D{
			{Key: "audience", Value: model.AudienceFollowersOnly},
			{Key: "user_id", Value: bson.D{{Key: "$in", Value: []primitive.ObjectID{uid}}}},
		}, branches[2])
	})

	t.Run("empty sets", func(t *testing.T) {
		uid := primitive.NewObjectID()
		branches := ScopeFilter(&model.AudienceScope{Requester: &uid})
		require.Len(t, branches, 1)
	})
}

func TestTweetPageQuery_filter(t *testing.T) {
	parent := primitive.NewObjectID()
	typ := model.TweetTypeComment
	q := &TweetPageQuery{
		ParentID: &parent,
		Type:     &typ,
		Scope:    &model.AudienceScope{},
	}

	filter := q.filter()
	require.Len(t, filter, 3)
	require.Equal(t, bson.E{Key: "parent_id", Value: parent}, filter[0])
	require.Equal(t, bson.E{Key: "type", Value: model.TweetTypeComment}, filter[1])
	require.Equal(t, "$or", filter[2].Key)

	authors := []primitive.ObjectID{primitive.NewObjectID()}
	filter = (&TweetPageQuery{AuthorIDs: authors}).filter()
	require.Equal(t, bson.D{
		{Key: "user_id", Value: bson.D{{Key: "$in", Value: authors}}},
	}, filter)

	require.Empty(t, (&TweetPageQuery{}).filter())
}

func TestGroupCountQuery(t *testing.T) {
	keys := []primitive.ObjectID{primitive.NewObjectID()}

	q := &GroupCountQuery{Collection: ColTweets, KeyField: "parent_id", Keys: keys, PartitionField: "type"}
	require.NoError(t, q.validate())
	pipeline := q.pipeline()
	require.Len(t, pipeline, 2)
	require.Equal(t, "$match", pipeline[0][0].Key)
	group := pipeline[1][0].Value.(bson.D)
	require.Equal(t, bson.D{
		{Key: "key", Value: "$parent_id"},
		{Key: "partition", Value: "$type"},
	}, group[0].Value)

	q = &GroupCountQuery{Collection: ColLikes, KeyField: "tweet_id", Keys: keys}
	group = q.pipeline()[1][0].Value.(bson.D)
	require.Equal(t, bson.D{{Key: "key", Value: "$tweet_id"}}, group[0].Value)

	require.Error(t, (&GroupCountQuery{Collection: ColUsers, KeyField: "_id"}).validate())
	require.Error(t, (&GroupCountQuery{Collection: ColLikes}).validate())
}

func TestIndexes(t *testing.T) {
	idx := indexes()
	for _, col := range []string{ColTweets, ColUsers, ColFollowers, ColLikes, ColBookmarks, ColHashtags} {
		require.NotEmpty(t, idx[col], col)
	}

	require.True(t, *idx[ColLikes][0].Options.Unique)
	require.True(t, *idx[ColBookmarks][0].Options.Unique)
	require.True(t, *idx[ColFollowers][0].Options.Unique)
}
