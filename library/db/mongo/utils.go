package mongo

import (
	"github.com/Laisky/errors/v2"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
)

// NotFound is err caused by missing document
func NotFound(err error) bool {
	return errors.Is(err, mongoLib.ErrNoDocuments)
}

// IsDuplicateKey is err caused by unique index violation
func IsDuplicateKey(err error) bool {
	return mongoLib.IsDuplicateKeyError(err)
}
