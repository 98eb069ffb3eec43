package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	msgLoginToComment = "You need to login or register to comment."
	msgTitleTaken     = "A post with that title already exists."
)

func (h *Handler) index(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// showPost serves GET and POST /post/:id. A POST carries a comment.
func (h *Handler) showPost(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := pathID(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	post, err := h.posts.Get(ctx, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	var form CommentForm
	var formErrors map[string]string

	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBind(&form); err != nil {
			status = http.StatusBadRequest
			formErrors = fieldErrors(err)
		} else {
			p := principalFrom(c)
			if !p.IsAuthenticated() {
				h.sessions.addFlash(c, msgLoginToComment)
				h.redirect(c, "/login")
				return
			}
			if _, err := h.posts.AddComment(ctx, post.ID, p.ID(), form.CommentText); err != nil {
				h.handleServiceError(c, err)
				return
			}
			h.logger.Info(ctx, "comment added", "post_id", post.ID, "user_id", p.ID())
			form = CommentForm{}
		}
	}

	comments, err := h.posts.Comments(ctx, post.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.render(c, status, "post.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     form,
		"Errors":   formErrors,
	})
}

func (h *Handler) renderPostForm(c *gin.Context, status int, action string, editing bool, form PostForm, errs map[string]string) {
	h.render(c, status, "make-post.html", gin.H{
		"Form":    form,
		"Errors":  errs,
		"Action":  action,
		"Editing": editing,
	})
}

func (h *Handler) newPostPage(c *gin.Context) {
	if err := auth.RequireAdmin(principalFrom(c), h.adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.renderPostForm(c, http.StatusOK, "/new-post", false, PostForm{}, nil)
}

func (h *Handler) createPost(c *gin.Context) {
	p := principalFrom(c)
	if err := auth.RequireAdmin(p, h.adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderPostForm(c, http.StatusBadRequest, "/new-post", false, form, fieldErrors(err))
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.Create(ctx, p.ID(), form.Input())
	if errors.Is(err, common.ErrAlreadyExists) {
		h.sessions.addFlash(c, msgTitleTaken)
		h.redirect(c, "/new-post")
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info(ctx, "post created", "post_id", post.ID)
	h.redirect(c, "/")
}

// loadPostForAdmin runs the admin gate and then resolves :id.
func (h *Handler) loadPostForAdmin(c *gin.Context) (*models.Post, bool) {
	if err := auth.RequireAdmin(principalFrom(c), h.adminID); err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	id, err := pathID(c)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return post, true
}

func (h *Handler) editPostPage(c *gin.Context) {
	post, ok := h.loadPostForAdmin(c)
	if !ok {
		return
	}
	h.renderPostForm(c, http.StatusOK, editPath(post.ID), true, postFormOf(post), nil)
}

func (h *Handler) updatePost(c *gin.Context) {
	post, ok := h.loadPostForAdmin(c)
	if !ok {
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderPostForm(c, http.StatusBadRequest, editPath(post.ID), true, form, fieldErrors(err))
		return
	}

	ctx := c.Request.Context()
	_, err := h.posts.Update(ctx, post.ID, form.Input())
	if errors.Is(err, common.ErrAlreadyExists) {
		h.sessions.addFlash(c, msgTitleTaken)
		h.redirect(c, editPath(post.ID))
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info(ctx, "post updated", "post_id", post.ID)
	h.redirect(c, postPath(post.ID))
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := auth.RequireAdmin(principalFrom(c), h.adminID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.posts.Delete(ctx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.logger.Info(ctx, "post deleted", "post_id", id)
	h.redirect(c, "/")
}

func postPath(id int64) string { return fmt.Sprintf("/post/%d", id) }
func editPath(id int64) string { return fmt.Sprintf("/edit-post/%d", id) }
