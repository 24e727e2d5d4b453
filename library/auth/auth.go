// Package auth extracts the requester identity from bearer tokens.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/leducanh112/Twitter-API/library/jwt"
)

const ctxKeyUserID = "auth_uid"

// TokenParser verify access tokens
type TokenParser interface {
	ParseAccessToken(token string) (*jwt.UserClaims, error)
}

// ErrorResponder writes the auth failure response
type ErrorResponder func(c *gin.Context, status int, message string)

// Auth gin middlewares for optional and required identity
type Auth struct {
	parser  TokenParser
	respond ErrorResponder
}

// New create auth middlewares
func New(parser TokenParser, respond ErrorResponder) *Auth {
	if respond == nil {
		respond = func(c *gin.Context, status int, message string) {
			c.AbortWithStatusJSON(status, gin.H{"message": message})
		}
	}

	return &Auth{parser: parser, respond: respond}
}

// Optional attach identity when a valid token is present.
//
// A malformed or expired token is rejected rather than downgraded to anonymous.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		if !a.attach(c, token) {
			return
		}

		c.Next()
	}
}

// Required reject requests without a valid access token
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			a.respond(c, http.StatusUnauthorized, MsgAccessTokenIsRequired)
			return
		}

		if !a.attach(c, token) {
			return
		}

		c.Next()
	}
}

func (a *Auth) attach(c *gin.Context, token string) bool {
	claims, err := a.parser.ParseAccessToken(token)
	if err != nil {
		a.respond(c, http.StatusUnauthorized, MsgAccessTokenIsInvalid)
		return false
	}

	c.Set(ctxKeyUserID, claims.UID())
	return true
}

// GetUserID get requester id, nil for anonymous requests
func GetUserID(c *gin.Context) *primitive.ObjectID {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return nil
	}

	uid, ok := v.(primitive.ObjectID)
	if !ok {
		return nil
	}

	return &uid
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

const (
	// MsgAccessTokenIsRequired missing bearer token
	MsgAccessTokenIsRequired = "Access token is required"
	// MsgAccessTokenIsInvalid bad bearer token
	MsgAccessTokenIsInvalid = "Access token is invalid"
)
