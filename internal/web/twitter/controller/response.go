// Package controller http handlers of twitter API
package controller

import (
	"net/http"

	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/leducanh112/Twitter-API/internal/web/twitter/model"
)

const (
	msgInvalidRequestBody  = "Invalid request body"
	msgInternalServerError = "Internal server error"
)

// Response envelope of every twitter API response
type Response struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

// Respond write envelope with status
func Respond(c *gin.Context, status int, message string, result any) {
	c.JSON(status, Response{Message: message, Result: result})
}

// AbortWithMessage abort request with envelope, usable as auth.ErrorResponder
func AbortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Message: message})
}

var errKindStatus = map[model.ErrKind]int{
	model.ErrKindInvalidArgument: http.StatusUnprocessableEntity,
	model.ErrKindNotFound:        http.StatusNotFound,
	model.ErrKindUnauthorized:    http.StatusUnauthorized,
	model.ErrKindForbidden:       http.StatusForbidden,
}

// statusOf map err to http status and public message
func statusOf(err error) (int, string) {
	if e, ok := model.AsError(err); ok {
		if status, ok := errKindStatus[e.Kind]; ok {
			return status, e.Message
		}
	}

	return http.StatusInternalServerError, msgInternalServerError
}

// RespondError write err, internal errors are logged and never exposed
func RespondError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	logger := gmw.GetLogger(c)
	if status == http.StatusInternalServerError {
		logger.Error("handle request", zap.Error(err), zap.String("path", c.FullPath()))
	} else {
		logger.Debug("reject request", zap.Error(err), zap.Int("status", status))
	}

	AbortWithMessage(c, status, msg)
}
