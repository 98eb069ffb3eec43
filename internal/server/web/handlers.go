package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/logging"
	"github.com/dmitrijs2005/gopherblog/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Handler serves the blog pages. Every handler reads the request principal
// through principalFrom; admin pages call auth.RequireAdmin before anything else.
type Handler struct {
	users    *services.UserService
	posts    *services.PostService
	sessions *SessionManager
	adminID  int64
	logger   logging.Logger
}

// NewHandler wires the route handlers. A nil logger discards output.
func NewHandler(us *services.UserService, ps *services.PostService, sm *SessionManager, adminID int64, l logging.Logger) *Handler {
	if l == nil {
		l = logging.Nop{}
	}
	return &Handler{
		users:    us,
		posts:    ps,
		sessions: sm,
		adminID:  adminID,
		logger:   l,
	}
}

// handleServiceError maps service errors onto error pages.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		h.renderError(c, http.StatusNotFound)
	case errors.Is(err, common.ErrForbidden):
		h.renderError(c, http.StatusForbidden)
	default:
		_ = c.Error(err)
		h.logger.Error(c.Request.Context(), "unhandled error",
			"request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path, "error", err)
		h.renderError(c, http.StatusInternalServerError)
	}
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// pathID parses the :id route parameter. Anything that is not a positive
// integer is reported as common.ErrorNotFound.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (h *Handler) notFound(c *gin.Context) {
	h.renderError(c, http.StatusNotFound)
}

func (h *Handler) about(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", nil)
}

func (h *Handler) contact(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", nil)
}
