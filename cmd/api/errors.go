package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
)

// API error codes mapped to HTTP statuses. NOT_FOUND deliberately
// covers both absent rows and rows owned by someone else.
const (
	codeUnauthorized    = "UNAUTHORIZED"
	codeNotFound        = "NOT_FOUND"
	codeBadRequest      = "BAD_REQUEST"
	codeTooManyRequests = "TOO_MANY_REQUESTS"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

var statusByCode = map[string]int{
	codeUnauthorized:    http.StatusUnauthorized,
	codeNotFound:        http.StatusNotFound,
	codeBadRequest:      http.StatusBadRequest,
	codeTooManyRequests: http.StatusTooManyRequests,
	codeInternal:        http.StatusInternalServerError,
}

func respondError(c *gin.Context, code, message string) {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
	c.Abort()
}

func badRequest(c *gin.Context, message string) {
	respondError(c, codeBadRequest, message)
}

func notFound(c *gin.Context, message string) {
	respondError(c, codeNotFound, message)
}

func internalError(c *gin.Context, message string) {
	respondError(c, codeInternal, message)
}

// respondStoreError maps repository errors: ErrNotFound becomes 404,
// everything else 500.
func respondStoreError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, database.ErrNotFound) {
		notFound(c, notFoundMessage)
		return
	}
	internalError(c, "something went wrong")
}
