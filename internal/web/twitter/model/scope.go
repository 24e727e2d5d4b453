package model

import (
	"bytes"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudienceScope audiences a requester may read, resolved once per request.
//
// Everyone tweets are always in scope. Circle and FollowersOnly tweets are
// in scope only when their author is in the matching set.
type AudienceScope struct {
	// Requester nil for anonymous
	Requester *primitive.ObjectID
	// Following every user the requester follows, including banned ones
	Following []primitive.ObjectID
	// CircleAuthors non-banned authors whose circle contains requester, and requester itself
	CircleAuthors map[primitive.ObjectID]struct{}
	// FollowedAuthors non-banned followed authors, and requester itself
	FollowedAuthors map[primitive.ObjectID]struct{}
}

// Anonymous scope without identity
func (s *AudienceScope) Anonymous() bool {
	return s.Requester == nil
}

// Allows tweet is in scope
func (s *AudienceScope) Allows(t *Tweet) bool {
	switch t.Audience {
	case AudienceEveryone:
		return true
	case AudienceTwitterCircle:
		_, ok := s.CircleAuthors[t.UserID]
		return ok
	case AudienceFollowersOnly:
		_, ok := s.FollowedAuthors[t.UserID]
		return ok
	default:
		return false
	}
}

// CircleAuthorIDs sorted ids of CircleAuthors
func (s *AudienceScope) CircleAuthorIDs() []primitive.ObjectID {
	return sortedIDs(s.CircleAuthors)
}

// FollowedAuthorIDs sorted ids of FollowedAuthors
func (s *AudienceScope) FollowedAuthorIDs() []primitive.ObjectID {
	return sortedIDs(s.FollowedAuthors)
}

func sortedIDs(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	return ids
}
