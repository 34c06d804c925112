package domain

// Domain contains the records exchanged with the posts backend.
// Read shapes carry server-assigned ids; *Data types are the writable subset.

type User struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
}

type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

// PostData is the payload for creating or editing a post.
type PostData struct {
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Data returns the writable fields of p.
func (p Post) Data() PostData {
	return PostData{UserID: p.UserID, Title: p.Title, Body: p.Body}
}

type Comment struct {
	ID     int    `json:"id" yaml:"id"`
	PostID int    `json:"postId" yaml:"postId"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Body   string `json:"body" yaml:"body"`
}

// CommentData is the payload for creating or editing a comment.
type CommentData struct {
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Data returns the writable fields of c.
func (c Comment) Data() CommentData {
	return CommentData{PostID: c.PostID, Name: c.Name, Email: c.Email, Body: c.Body}
}
