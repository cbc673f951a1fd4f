// Package entity defines the records served by the API and the domain errors
// shared by every resource.
package entity

// Article is a link shared with the class, with who posted it and when.
type Article struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	Explanation string        `json:"explanation"`
	Email       string        `json:"email"`
	DateAdded   LocalDateTime `json:"dateAdded"`
}

// ArticleName is the entity name used in not-found and delete messages.
const ArticleName = "Article"

// Replace copies every mutable field of src onto a.
func (a *Article) Replace(src *Article) {
	a.Title = src.Title
	a.URL = src.URL
	a.Explanation = src.Explanation
	a.Email = src.Email
	a.DateAdded = src.DateAdded
}
