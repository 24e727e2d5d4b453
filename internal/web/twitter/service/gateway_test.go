package service

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dao"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
	"github.com/leducanh112/Twitter-API/library/log"
)

// memGateway in-memory Gateway for tests
type memGateway struct {
	mu        sync.Mutex
	tweets    map[primitive.ObjectID]*model.Tweet
	users     map[primitive.ObjectID]*model.User
	follows   map[primitive.ObjectID]map[primitive.ObjectID]bool
	likes     map[[2]primitive.ObjectID]*model.Like
	bookmarks map[[2]primitive.ObjectID]*model.Bookmark
	hashtags  map[string]model.Hashtag
	clock     time.Time
}

func newMemGateway() *memGateway {
	return &memGateway{
		tweets:    map[primitive.ObjectID]*model.Tweet{},
		users:     map[primitive.ObjectID]*model.User{},
		follows:   map[primitive.ObjectID]map[primitive.ObjectID]bool{},
		likes:     map[[2]primitive.ObjectID]*model.Like{},
		bookmarks: map[[2]primitive.ObjectID]*model.Bookmark{},
		hashtags:  map[string]model.Hashtag{},
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(gw Gateway) *Twitter {
	return New(log.Logger.Named("twitter_test"), gw)
}

// tick returns strictly increasing timestamps
func (g *memGateway) tick() time.Time {
	g.clock = g.clock.Add(time.Second)
	return g.clock
}

func (g *memGateway) addUser(verify model.UserVerifyStatus, circle ...primitive.ObjectID) primitive.ObjectID {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := &model.User{
		ID:            primitive.NewObjectID(),
		Name:          "user",
		Username:      "user",
		Email:         "user@example.com",
		Verify:        verify,
		TwitterCircle: circle,
	}
	g.users[u.ID] = u
	return u.ID
}

func (g *memGateway) follow(follower, followed primitive.ObjectID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.follows[follower] == nil {
		g.follows[follower] = map[primitive.ObjectID]bool{}
	}
	g.follows[follower][followed] = true
}

func (g *memGateway) addTweet(author primitive.ObjectID, typ model.TweetType,
	audience model.Audience, parent *primitive.ObjectID) *model.Tweet {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.tick()
	t := &model.Tweet{
		ID:        primitive.NewObjectID(),
		UserID:    author,
		Type:      typ,
		Audience:  audience,
		Content:   "content",
		ParentID:  parent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.tweets[t.ID] = t
	return t
}

func (g *memGateway) GetTweet(_ context.Context, id primitive.ObjectID) (*model.Tweet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.tweets[id]
	if !ok {
		return nil, model.ErrTweetNotFound
	}

	cp := *t
	return &cp, nil
}

func (g *memGateway) FindTweetPage(_ context.Context, q *dao.TweetPageQuery) ([]*model.Tweet, int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var authors map[primitive.ObjectID]bool
	if q.AuthorIDs != nil {
		authors = map[primitive.ObjectID]bool{}
		for _, id := range q.AuthorIDs {
			authors[id] = true
		}
	}

	var matched []*model.Tweet
	for _, t := range g.tweets {
		switch {
		case q.ParentID != nil && (t.ParentID == nil || *t.ParentID != *q.ParentID):
			continue
		case q.Type != nil && t.Type != *q.Type:
			continue
		case authors != nil && !authors[t.UserID]:
			continue
		case q.Scope != nil && !q.Scope.Allows(t):
			continue
		}

		cp := *t
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) > 0
	})

	total := int64(len(matched))
	start := min(q.Skip, total)
	end := min(start+q.Limit, total)
	return matched[start:end], total, nil
}

func (g *memGateway) IncrementViews(_ context.Context,
	id primitive.ObjectID, field dao.ViewField) (*model.ViewCounters, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.tweets[id]
	if !ok {
		return nil, model.ErrTweetNotFound
	}

	if field == dao.ViewFieldGuest {
		t.GuestViews++
	} else {
		t.UserViews++
	}
	t.UpdatedAt = g.tick()

	return &model.ViewCounters{
		GuestViews: t.GuestViews,
		UserViews:  t.UserViews,
		UpdatedAt:  t.UpdatedAt,
	}, nil
}

func (g *memGateway) InsertTweet(_ context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = g.tick()
	tweet.UpdatedAt = tweet.CreatedAt
	cp := *tweet
	g.tweets[tweet.ID] = &cp
	return tweet, nil
}

func (g *memGateway) UpsertHashtags(_ context.Context, names []string) ([]model.Hashtag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var tags []model.Hashtag
	for _, name := range names {
		tag, ok := g.hashtags[name]
		if !ok {
			tag = model.Hashtag{ID: primitive.NewObjectID(), Name: name, CreatedAt: g.tick()}
			g.hashtags[name] = tag
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func (g *memGateway) FindHashtags(_ context.Context, ids []primitive.ObjectID) ([]model.Hashtag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}

	tags := []model.Hashtag{}
	for _, tag := range g.hashtags {
		if want[tag.ID] {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

func (g *memGateway) GetUser(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u, ok := g.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

func (g *memGateway) GetUsers(_ context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	users := []*model.User{}
	for _, id := range ids {
		if u, ok := g.users[id]; ok {
			cp := *u
			users = append(users, &cp)
		}
	}

	return users, nil
}

func (g *memGateway) IsFollowing(_ context.Context, follower, followed primitive.ObjectID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.follows[follower][followed], nil
}

func (g *memGateway) FollowedUserIDs(_ context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := []primitive.ObjectID{}
	for id := range g.follows[uid] {
		ids = append(ids, id)
	}

	return ids, nil
}

func (g *memGateway) CircleGrantorIDs(_ context.Context, uid primitive.ObjectID) ([]primitive.ObjectID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := []primitive.ObjectID{}
	for _, u := range g.users {
		if !u.IsBanned() && u.InCircle(uid) {
			ids = append(ids, u.ID)
		}
	}

	return ids, nil
}

func (g *memGateway) CountGroupedBy(_ context.Context, q *dao.GroupCountQuery) ([]dao.GroupCount, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	want := map[primitive.ObjectID]bool{}
	for _, id := range q.Keys {
		want[id] = true
	}

	type groupKey struct {
		key       primitive.ObjectID
		partition int
	}
	groups := map[groupKey]int64{}
	switch q.Collection {
	case dao.ColLikes:
		for k := range g.likes {
			if want[k[1]] {
				groups[groupKey{key: k[1]}]++
			}
		}
	case dao.ColBookmarks:
		for k := range g.bookmarks {
			if want[k[1]] {
				groups[groupKey{key: k[1]}]++
			}
		}
	case dao.ColTweets:
		for _, t := range g.tweets {
			if t.ParentID != nil && want[*t.ParentID] {
				groups[groupKey{key: *t.ParentID, partition: int(t.Type)}]++
			}
		}
	}

	counts := []dao.GroupCount{}
	for k, n := range groups {
		counts = append(counts, dao.GroupCount{Key: k.key, Partition: k.partition, Count: n})
	}

	return counts, nil
}

func (g *memGateway) UpsertLike(_ context.Context, uid, tweetID primitive.ObjectID) (*model.Like, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := [2]primitive.ObjectID{uid, tweetID}
	if _, ok := g.likes[k]; !ok {
		g.likes[k] = &model.Like{ID: primitive.NewObjectID(), UserID: uid, TweetID: tweetID, CreatedAt: g.tick()}
	}

	return g.likes[k], nil
}

func (g *memGateway) DeleteLike(_ context.Context, uid, tweetID primitive.ObjectID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := [2]primitive.ObjectID{uid, tweetID}
	_, ok := g.likes[k]
	delete(g.likes, k)
	return ok, nil
}

func (g *memGateway) UpsertBookmark(_ context.Context, uid, tweetID primitive.ObjectID) (*model.Bookmark, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := [2]primitive.ObjectID{uid, tweetID}
	if _, ok := g.bookmarks[k]; !ok {
		g.bookmarks[k] = &model.Bookmark{ID: primitive.NewObjectID(), UserID: uid, TweetID: tweetID, CreatedAt: g.tick()}
	}

	return g.bookmarks[k], nil
}

func (g *memGateway) DeleteBookmark(_ context.Context, uid, tweetID primitive.ObjectID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := [2]primitive.ObjectID{uid, tweetID}
	_, ok := g.bookmarks[k]
	delete(g.bookmarks, k)
	return ok, nil
}
