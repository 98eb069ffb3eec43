package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgEmailTaken      = "You've already signed up with that email, log in instead!"
	msgEmailNotFound   = "That email does not exist, please try again."
	msgWrongPassword   = "Password incorrect, please try again."
	msgLoginSuccessful = "Login successful for %s."
)

func (h *Handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"Form": RegisterForm{}})
}

func (h *Handler) register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		h.render(c, http.StatusBadRequest, "register.html", gin.H{"Form": form, "Errors": fieldErrors(err)})
		return
	}

	ctx := c.Request.Context()
	email := strings.TrimSpace(form.Email)

	user, err := h.users.Register(ctx, email, strings.TrimSpace(form.Name), form.Password)
	if errors.Is(err, common.ErrAlreadyExists) {
		h.logger.Info(ctx, "registration with taken email", "email", email)
		h.sessions.addFlash(c, msgEmailTaken)
		h.redirect(c, "/")
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info(ctx, "user registered", "user_id", user.ID)
	h.redirect(c, "/")
}

func (h *Handler) loginPage(c *gin.Context) {
	if principalFrom(c).IsAuthenticated() {
		h.redirect(c, "/")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"Form": LoginForm{}})
}

func (h *Handler) login(c *gin.Context) {
	if principalFrom(c).IsAuthenticated() {
		h.redirect(c, "/")
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"Form": form, "Errors": fieldErrors(err)})
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	switch {
	case errors.Is(err, common.ErrEmailNotFound):
		h.sessions.addFlash(c, msgEmailNotFound)
		h.redirect(c, "/login")
		return
	case errors.Is(err, common.ErrWrongPassword):
		h.sessions.addFlash(c, msgWrongPassword)
		h.redirect(c, "/login")
		return
	case err != nil:
		h.handleServiceError(c, err)
		return
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info(ctx, "user logged in", "user_id", user.ID)
	h.sessions.addFlash(c, fmt.Sprintf(msgLoginSuccessful, user.Name))
	h.redirect(c, "/")
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Logout(c)
	h.redirect(c, "/")
}
