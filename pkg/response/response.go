// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/repository"
	"github.com/maxviazov/player-roster-service/internal/service"
)

// ErrorPayload is the body of every non-success response. It has the same
// shape as a failed service.Result so clients parse one envelope.
type ErrorPayload struct {
	Status      service.Status      `json:"status"`
	Code        service.Code        `json:"code"`
	Messages    []string            `json:"messages,omitempty"`
	FieldErrors map[string][]string `json:"field_errors,omitempty"`
}

// StatusFor maps a failure code onto an HTTP status.
func StatusFor(code service.Code) int {
	switch code {
	case service.CodeValidation, service.CodeInvalidArgument:
		return http.StatusBadRequest
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusConflict
	case service.CodeInvalidOperation:
		return http.StatusUnprocessableEntity
	case service.CodeCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MapError converts an error raised outside the service layer (request binding,
// middleware) into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if errors.Is(err, service.ErrInvalidInput) {
		p := ErrorPayload{Status: service.StatusValidationFailure, Code: service.CodeValidation}
		if fields := service.FieldErrors(err); len(fields) > 0 {
			p.FieldErrors = make(map[string][]string, len(fields))
			for _, fe := range fields {
				p.FieldErrors[fe.Field] = append(p.FieldErrors[fe.Field], fe.Message)
			}
		} else {
			p.Messages = []string{"request body is malformed"}
		}
		return http.StatusBadRequest, p
	}

	var code service.Code
	var msg string
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		code, msg = service.CodeUnauthenticated, service.ErrUnauthenticated.Error()
	case errors.Is(err, repository.ErrNotFound):
		code, msg = service.CodeNotFound, "resource not found"
	case errors.Is(err, repository.ErrAlreadyExists), errors.Is(err, repository.ErrConflict):
		code, msg = service.CodeConflict, "conflict"
	default:
		code, msg = service.CodeInternal, "an unexpected error occurred"
	}
	return StatusFor(code), ErrorPayload{Status: service.StatusFailure, Code: code, Messages: []string{msg}}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteResult writes res with okStatus on success, or the status of its failure code.
func WriteResult[T any](c *gin.Context, okStatus int, res service.Result[T]) {
	if res.IsSuccess() {
		c.JSON(okStatus, res)
		return
	}
	c.AbortWithStatusJSON(StatusFor(res.Code), ErrorPayload{
		Status:      res.Status,
		Code:        res.Code,
		Messages:    res.Messages,
		FieldErrors: res.FieldErrors,
	})
}
