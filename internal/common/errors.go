// Package common defines shared constants and sentinel errors used across
// the blog server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Authorization gate.
	ErrForbidden = errors.New("forbidden")

	// Login outcomes, kept apart so handlers can tell the user which one failed.
	ErrEmailNotFound = errors.New("email does not exist")
	ErrWrongPassword = errors.New("password incorrect")

	// Session token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
