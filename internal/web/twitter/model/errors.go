package model

import "github.com/Laisky/errors/v2"

// ErrKind status class of a domain error
type ErrKind int

const (
	// ErrKindInvalidArgument malformed request
	ErrKindInvalidArgument ErrKind = iota + 1
	// ErrKindNotFound missing tweet, user or parent
	ErrKindNotFound
	// ErrKindUnauthorized identity required
	ErrKindUnauthorized
	// ErrKindForbidden identity not allowed
	ErrKindForbidden
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidArgument:
		return "invalid_argument"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindUnauthorized:
		return "unauthorized"
	case ErrKindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error domain error with a stable message
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// NewError create domain error
func NewError(kind ErrKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// AsError find domain error in err chain
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// IsKind err is a domain error of kind
func IsKind(err error, kind ErrKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// stable messages
const (
	MsgInvalidTweetID                   = "Invalid tweet id"
	MsgInvalidType                      = "Invalid type"
	MsgInvalidAudience                  = "Invalid audience"
	MsgTweetNotFound                    = "Tweet not found"
	MsgTweetIsNotPublic                 = "Tweet is not public"
	MsgUserNotFound                     = "User not found"
	MsgAccessTokenIsRequired            = "Access token is required"
	MsgLimitMustBeBetween1And100        = "Limit must be between 1 and 100"
	MsgPageMustBeAPositiveInteger       = "Page must be a positive integer"
	MsgParentIDMustBeAValidTweetID      = "Parent id must be a valid tweet id"
	MsgParentIDMustBeNull               = "Parent id must be null"
	MsgContentMustBeEmptyString         = "Content must be empty string"
	MsgContentMustBeANonEmptyString     = "Content must be a non empty string"
	MsgHashtagsMustBeAnArrayOfString    = "Hashtags must be an array of non empty string"
	MsgMentionsMustBeAnArrayOfUserID    = "Mentions must be an array of user id"
	MsgMediaMustBeAnArrayOfMediaObjects = "Media must be an array of media object"
	MsgInvalidCounterState              = "Invalid counter state"
)

var (
	// ErrTweetNotFound tweet does not exist
	ErrTweetNotFound = NewError(ErrKindNotFound, MsgTweetNotFound)
	// ErrUserNotFound author does not exist or is banned
	ErrUserNotFound = NewError(ErrKindNotFound, MsgUserNotFound)
	// ErrAccessTokenRequired anonymous requester on restricted tweet
	ErrAccessTokenRequired = NewError(ErrKindUnauthorized, MsgAccessTokenIsRequired)
	// ErrTweetIsNotPublic requester is not in audience
	ErrTweetIsNotPublic = NewError(ErrKindForbidden, MsgTweetIsNotPublic)
)
