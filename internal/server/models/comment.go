package models

// Comment is a reader's reply to a post. AuthorName and AuthorEmail are
// joined from users on reads; the email feeds the avatar.
type Comment struct {
	ID       int64
	AuthorID int64
	PostID   int64
	Text     string

	AuthorName  string
	AuthorEmail string
}
