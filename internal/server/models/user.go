// Package models defines server-side data models persisted in the database.
package models

// User is a registered account. Password holds the salted credential
// produced by cryptox.HashPassword, never the raw password.
type User struct {
	ID       int64
	Email    string
	Password string
	Name     string
}
