package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/player-roster-service/internal/service"
	"github.com/maxviazov/player-roster-service/pkg/response"
)

const currentUserKey = "current_user_id"

// CurrentUser copies the caller id from header into the gin context and rejects
// requests without one. Authentication happens upstream; the id is trusted as is.
func CurrentUser(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultUserHeader
	}
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(header))
		if id == "" {
			response.WriteError(c, service.ErrUnauthenticated)
			return
		}
		c.Set(currentUserKey, id)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(currentUserKey)
}

// pathID parses a numeric path parameter. Garbage becomes 0, which the
// services reject as a field error.
func pathID(c *gin.Context, name string) int64 {
	id, _ := strconv.ParseInt(c.Param(name), 10, 64)
	return id
}

// RequestTimeout bounds the request context so slow queries are cancelled.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
