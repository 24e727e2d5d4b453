package service

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/dto"
	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

const (
	// defaultPageSize used when limit is omitted.
	defaultPageSize = 10
	// maxTweetPageSize caps the number of tweets returned per page.
	maxTweetPageSize = 100
	// maxHashtagLength caps the length of one hashtag.
	maxHashtagLength = 100
)

func invalidArgument(msg string) error {
	return model.NewError(model.ErrKindInvalidArgument, msg)
}

// sanitizeTweetID parses a tweet id from path or body.
func sanitizeTweetID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, invalidArgument(model.MsgInvalidTweetID)
	}

	return id, nil
}

// sanitizePagination parses limit and page, omitted values take defaults.
// out of range values are rejected, never clamped.
func sanitizePagination(q dto.PaginationQuery) (dto.Pagination, error) {
	p := dto.Pagination{Limit: defaultPageSize, Page: 1}

	if raw := strings.TrimSpace(q.Limit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxTweetPageSize {
			return p, invalidArgument(model.MsgLimitMustBeBetween1And100)
		}
		p.Limit = limit
	}

	if raw := strings.TrimSpace(q.Page); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, invalidArgument(model.MsgPageMustBeAPositiveInteger)
		}
		p.Page = page
	}

	return p, nil
}

// sanitizeTweetChildrenQuery validates GET /tweets/:tweet_id/children.
func sanitizeTweetChildrenQuery(tweetID string, q *dto.TweetChildrenQuery) (*dto.TweetChildrenArgs, error) {
	parentID, err := sanitizeTweetID(tweetID)
	if err != nil {
		return nil, err
	}

	tweetType := model.TweetTypeComment
	if strings.TrimSpace(q.TweetType) != "" {
		var ok bool
		if tweetType, ok = model.ParseTweetType(q.TweetType); !ok {
			return nil, invalidArgument(model.MsgInvalidType)
		}
	}

	p, err := sanitizePagination(q.PaginationQuery)
	if err != nil {
		return nil, err
	}

	return &dto.TweetChildrenArgs{
		Pagination: p,
		ParentID:   parentID,
		TweetType:  tweetType,
	}, nil
}

// sanitizeHashtag trims a hashtag and strips the leading '#'.
func sanitizeHashtag(raw string) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if name == "" ||
		strings.ContainsRune(name, '\x00') ||
		utf8.RuneCountInString(name) > maxHashtagLength {
		return "", invalidArgument(model.MsgHashtagsMustBeAnArrayOfString)
	}

	return name, nil
}

// sanitizeCreateTweet validates body of POST /tweets.
// parent existence needs the database and is checked by CreateTweet.
func sanitizeCreateTweet(req *dto.CreateTweetRequest) (*dto.CreateTweetArgs, error) {
	if req.Type == nil || !model.TweetType(*req.Type).Valid() {
		return nil, invalidArgument(model.MsgInvalidType)
	}
	if req.Audience == nil || !model.Audience(*req.Audience).Valid() {
		return nil, invalidArgument(model.MsgInvalidAudience)
	}

	args := &dto.CreateTweetArgs{
		Type:     model.TweetType(*req.Type),
		Audience: model.Audience(*req.Audience),
		Content:  req.Content,
		Hashtags: []string{},
		Mentions: []primitive.ObjectID{},
		Medias:   []model.Media{},
	}

	if args.Type.IsChild() {
		if req.ParentID == nil {
			return nil, invalidArgument(model.MsgParentIDMustBeAValidTweetID)
		}
		parentID, err := primitive.ObjectIDFromHex(strings.TrimSpace(*req.ParentID))
		if err != nil {
			return nil, invalidArgument(model.MsgParentIDMustBeAValidTweetID)
		}
		args.ParentID = &parentID
	} else if req.ParentID != nil {
		return nil, invalidArgument(model.MsgParentIDMustBeNull)
	}

	seenTags := map[string]bool{}
	for _, raw := range req.Hashtags {
		name, err := sanitizeHashtag(raw)
		if err != nil {
			return nil, err
		}
		if !seenTags[name] {
			seenTags[name] = true
			args.Hashtags = append(args.Hashtags, name)
		}
	}

	seenMentions := map[primitive.ObjectID]bool{}
	for _, raw := range req.Mentions {
		uid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return nil, invalidArgument(model.MsgMentionsMustBeAnArrayOfUserID)
		}
		if !seenMentions[uid] {
			seenMentions[uid] = true
			args.Mentions = append(args.Mentions, uid)
		}
	}

	for _, m := range req.Medias {
		if strings.TrimSpace(m.URL) == "" || m.Type == nil || !model.MediaType(*m.Type).Valid() {
			return nil, invalidArgument(model.MsgMediaMustBeAnArrayOfMediaObjects)
		}
		args.Medias = append(args.Medias, model.Media{
			URL:  strings.TrimSpace(m.URL),
			Type: model.MediaType(*m.Type),
		})
	}

	switch {
	case args.Type == model.TweetTypeRetweet:
		if args.Content != "" {
			return nil, invalidArgument(model.MsgContentMustBeEmptyString)
		}
	case strings.TrimSpace(args.Content) == "" &&
		len(args.Hashtags) == 0 &&
		len(args.Mentions) == 0:
		return nil, invalidArgument(model.MsgContentMustBeANonEmptyString)
	}

	return args, nil
}
