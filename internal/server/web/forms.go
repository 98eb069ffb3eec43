package web

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required"`
	Name     string `form:"name" binding:"required,max=100"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type CommentForm struct {
	CommentText string `form:"comment_text" binding:"required"`
}

// PostForm is used by both /new-post and /edit-post.
type PostForm struct {
	Title    string `form:"title" binding:"required,max=250"`
	Subtitle string `form:"subtitle" binding:"required,max=250"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250"`
	Body     string `form:"body" binding:"required"`
}

func (f PostForm) Input() models.PostInput {
	return models.PostInput{
		Title:    strings.TrimSpace(f.Title),
		Subtitle: strings.TrimSpace(f.Subtitle),
		ImgURL:   strings.TrimSpace(f.ImgURL),
		Body:     f.Body,
	}
}

func postFormOf(p *models.Post) PostForm {
	return PostForm{Title: p.Title, Subtitle: p.Subtitle, ImgURL: p.ImgURL, Body: p.Body}
}

// fieldErrors turns a binding error into messages keyed by form field name.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}

	for _, fe := range verrs {
		out[formFieldName(fe.Field())] = fieldMessage(fe)
	}
	return out
}

var formFieldNames = map[string]string{
	"Email":       "email",
	"Password":    "password",
	"Name":        "name",
	"CommentText": "comment_text",
	"Title":       "title",
	"Subtitle":    "subtitle",
	"ImgURL":      "img_url",
	"Body":        "body",
}

func formFieldName(structField string) string {
	if name, ok := formFieldNames[structField]; ok {
		return name
	}
	return strings.ToLower(structField)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "max":
		return "Field cannot be longer than " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}
