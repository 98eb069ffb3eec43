package web

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	gravatarSize    = 100
	gravatarDefault = "retro"
	gravatarRating  = "g"
)

// ugcPolicy strips scripts and event handlers from editor HTML while keeping
// ordinary formatting.
var ugcPolicy = bluemonday.UGCPolicy()

func sanitize(s string) template.HTML {
	return template.HTML(ugcPolicy.Sanitize(s))
}

func gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=%s&r=%s",
		hex.EncodeToString(sum[:]), gravatarSize, gravatarDefault, gravatarRating)
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"sanitize": sanitize,
		"gravatar": gravatar,
	}).ParseFS(templateFS, "templates/*.html")
}

// render executes the named page with data plus the values every page uses.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	p := principalFrom(c)
	data["LoggedIn"] = p.IsAuthenticated()
	data["CurrentUser"] = p.Name()
	data["IsAdmin"] = auth.RequireAdmin(p, h.adminID) == nil
	data["Flashes"] = h.sessions.popFlashes(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int) {
	h.render(c, status, "error.html", gin.H{
		"Status":  status,
		"Message": http.StatusText(status),
	})
	c.Abort()
}
