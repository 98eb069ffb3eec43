package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/logging"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	principalKey = "principal"
	requestIDKey = "request_id"
)

// requestLogger tags every request with an id and logs it once served.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(common.RequestIDHeaderName, requestID)

		c.Next()

		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			l.Error(c.Request.Context(), "request", args...)
		case c.Writer.Status() >= http.StatusBadRequest:
			l.Warn(c.Request.Context(), "request", args...)
		default:
			l.Info(c.Request.Context(), "request", args...)
		}
	}
}

// loadPrincipal resolves the session into a principal for every request.
// Stale sessions, such as ones for deleted users, resolve to anonymous.
func (h *Handler) loadPrincipal(c *gin.Context) {
	p := auth.Anonymous()

	if id, ok := h.sessions.CurrentUserID(c); ok {
		var err error
		p, err = h.users.LoadPrincipal(c.Request.Context(), id)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		h.logger.Debug(c.Request.Context(), "session resolved", "user_id", id, "authenticated", p.IsAuthenticated())
	}

	c.Set(principalKey, p)
	c.Next()
}

// requireSession sends anonymous visitors back to the listing.
func requireSession(c *gin.Context) {
	if !principalFrom(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

func principalFrom(c *gin.Context) auth.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(auth.Principal); ok {
			return p
		}
	}
	return auth.Anonymous()
}
