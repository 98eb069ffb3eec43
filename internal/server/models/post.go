package models

// Post is a blog article. AuthorName is filled on reads by joining users
// and is ignored on writes.
type Post struct {
	ID       int64
	AuthorID int64
	Title    string
	Subtitle string
	Date     string
	Body     string
	ImgURL   string

	AuthorName string
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}
