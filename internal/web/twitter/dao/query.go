package dao

import (
	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

// GroupCountQuery count documents of Collection whose KeyField is in Keys,
// grouped by KeyField and optionally by PartitionField
type GroupCountQuery struct {
	Collection     string
	KeyField       string
	Keys           []primitive.ObjectID
	PartitionField string
}

// GroupCount one group of GroupCountQuery
type GroupCount struct {
	Key       primitive.ObjectID
	Partition int
	Count     int64
}

var groupCountCols = map[string]bool{
	ColTweets:    true,
	ColLikes:     true,
	ColBookmarks: true,
}

func (q *GroupCountQuery) validate() error {
	if !groupCountCols[q.Collection] {
		return errors.Errorf("collection %q does not support grouped count", q.Collection)
	}
	if q.KeyField == "" {
		return errors.New("key field is required")
	}

	return nil
}

// pipeline build aggregation of grouped count
func (q *GroupCountQuery) pipeline() mongoLib.Pipeline {
	groupID := bson.D{{Key: "key", Value: "$" + q.KeyField}}
	if q.PartitionField != "" {
		groupID = append(groupID, bson.E{Key: "partition", Value: "$" + q.PartitionField})
	}

	return mongoLib.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: q.KeyField, Value: bson.D{{Key: "$in", Value: q.Keys}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: groupID},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// TweetPageQuery one page of tweets ordered by created_at desc
type TweetPageQuery struct {
	// ParentID only children of this tweet
	ParentID *primitive.ObjectID
	// Type only tweets of this type
	Type *model.TweetType
	// AuthorIDs only tweets of these authors, nil means any author
	AuthorIDs []primitive.ObjectID
	// Scope only tweets visible in scope, nil means no visibility filter
	Scope *model.AudienceScope
	Skip  int64
	Limit int64
}

// filter build query filter
func (q *TweetPageQuery) filter() bson.D {
	filter := bson.D{}
	if q.ParentID != nil {
		filter = append(filter, bson.E{Key: "parent_id", Value: *q.ParentID})
	}
	if q.Type != nil {
		filter = append(filter, bson.E{Key: "type", Value: *q.Type})
	}
	if q.AuthorIDs != nil {
		filter = append(filter, bson.E{Key: "user_id", Value: bson.D{{Key: "$in", Value: q.AuthorIDs}}})
	}
	if q.Scope != nil {
		filter = append(filter, bson.E{Key: "$or", Value: ScopeFilter(q.Scope)})
	}

	return filter
}

// ScopeFilter build $or branches matching tweets visible in scope
func ScopeFilter(scope *model.AudienceScope) bson.A {
	branches := bson.A{
		bson.D{{Key: "audience", Value: model.AudienceEveryone}},
	}
	if scope.Anonymous() {
		return branches
	}

	if ids := scope.CircleAuthorIDs(); len(ids) != 0 {
		branches = append(branches, bson.D{
			{Key: "audience", Value: model.AudienceTwitterCircle},
			{Key: "user_id", Value: bson.D{{Key: "$in", Value: ids}}},
		})
	}
	if ids := scope.FollowedAuthorIDs(); len(ids) != 0 {
		branches = append(branches, bson.D{
			{Key: "audience", Value: model.AudienceFollowersOnly},
			{Key: "user_id", Value: bson.D{{Key: "$in", Value: ids}}},
		})
	}

	return branches
}

// pageSort newest first, _id breaks ties so pages never overlap
var pageSort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// ViewField counter increased by a tweet read
type ViewField string

const (
	// ViewFieldGuest read without identity
	ViewFieldGuest ViewField = "guest_views"
	// ViewFieldUser read with identity
	ViewFieldUser ViewField = "user_views"
)
