package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) recoverPanic(c *gin.Context, recovered any) {
	h.logger.Error(c.Request.Context(), "panic recovered",
		"request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path, "panic", recovered)
	h.renderError(c, http.StatusInternalServerError)
}

// NewRouter builds the gin engine with every blog route.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(requestLogger(h.logger))
	r.Use(gin.CustomRecovery(h.recoverPanic))
	r.Use(h.loadPrincipal)

	r.GET("/", h.index)

	r.GET("/register", h.registerPage)
	r.POST("/register", h.register)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/logout", requireSession, h.logout)

	r.GET("/post/:id", h.showPost)
	r.POST("/post/:id", h.showPost)

	r.GET("/about", h.about)
	r.GET("/contact", h.contact)

	r.GET("/new-post", h.newPostPage)
	r.POST("/new-post", h.createPost)
	r.GET("/edit-post/:id", h.editPostPage)
	r.POST("/edit-post/:id", h.updatePost)
	r.GET("/delete/:id", h.deletePost)

	r.NoRoute(h.notFound)

	return r, nil
}
