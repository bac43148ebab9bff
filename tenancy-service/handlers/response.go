package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contaia-backend/shared/logger"
	"contaia-backend/shared/tenancy"
)

// Response is the envelope of every API answer.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ListResponse is the data of paginated listings.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	Pagination any `json:"pagination"`
}

// CreatedResponse is the data returned by create and invite endpoints.
type CreatedResponse struct {
	ID string `json:"id"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error:   message,
		Code:    getErrorCode(status),
	})
}

// fail maps a registry error to its HTTP status.
func fail(c *gin.Context, err error) {
	switch {
	case tenancy.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case tenancy.IsInvalidInput(err):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case tenancy.IsForbidden(err):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		logger.FromGin(c).Error("Request failed", zap.Error(err))
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bind decodes the JSON body into v. An empty body leaves v untouched so
// patches may be sent without one.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// getErrorCode generates error codes based on status
func getErrorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "INVALID_INPUT"
	case http.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
