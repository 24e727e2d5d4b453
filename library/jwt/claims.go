package jwt

import (
	"github.com/Laisky/errors/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenType kind of token issued by the account service
type TokenType int

const (
	// TokenTypeAccess short-lived token carried by api requests
	TokenTypeAccess TokenType = iota
	// TokenTypeRefresh token used to renew access token
	TokenTypeRefresh
	// TokenTypeForgotPassword token sent by email to reset password
	TokenTypeForgotPassword
	// TokenTypeEmailVerify token sent by email to verify account
	TokenTypeEmailVerify
)

// UserClaims payload of tokens issued by the account service
type UserClaims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	Verify    int       `json:"verify"`
}

// Validate is called by the parser after the registered claims are verified
func (uc *UserClaims) Validate() error {
	if !primitive.IsValidObjectID(uc.UserID) {
		return errors.Errorf("invalid user_id %q", uc.UserID)
	}

	return nil
}

// UID parse user id in claims
func (uc *UserClaims) UID() primitive.ObjectID {
	uid, _ := primitive.ObjectIDFromHex(uc.UserID)
	return uid
}
