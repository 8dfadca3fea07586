package util

import (
	"github.com/gin-gonic/gin"
)

// Error kinds carried in the "error" field of every failure body.
const (
	KindBadRequest  = "bad_request"
	KindNotFound    = "not_found"
	KindAuth        = "auth_error"
	KindHashing     = "hashing_error"
	KindPersistence = "persistence_error"
	KindToken       = "token_error"
	KindUnavailable = "unavailable"
	KindInternal    = "internal_error"
)

// Error writes the stable failure body {"error": kind, "message": msg}.
func Error(c *gin.Context, httpStatus int, kind string, msg string) {
	c.JSON(httpStatus, gin.H{
		"error":   kind,
		"message": msg,
	})
}

// AbortError is Error followed by c.Abort, for middleware.
func AbortError(c *gin.Context, httpStatus int, kind string, msg string) {
	Error(c, httpStatus, kind, msg)
	c.Abort()
}
