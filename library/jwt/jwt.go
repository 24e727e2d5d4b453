// Package jwt verifies tokens issued by the account service.
package jwt

import (
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Parser verify HS256 tokens signed with the shared secret
type Parser struct {
	secret []byte
	leeway time.Duration
}

// New create token parser
func New(secret []byte) (*Parser, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}

	return &Parser{
		secret: secret,
		leeway: 5 * time.Second,
	}, nil
}

// ParseAccessToken verify token and make sure it is an access token
func (p *Parser) ParseAccessToken(token string) (*UserClaims, error) {
	claims := new(UserClaims)
	if _, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(p.leeway),
	); err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, errors.Errorf("token type %d is not access token", claims.TokenType)
	}

	return claims, nil
}

// Sign sign claims with the shared secret
func (p *Parser) Sign(claims *UserClaims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return token, nil
}
