package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")
var ErrImageNotFound = errors.New("image not found")
var ErrForbidden = errors.New("access forbidden")

// Article is the core aggregate: a piece of content owned by exactly one
// author. AuthorID is set at creation and never reassigned.
type Article struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	FeaturedImage []byte    `json:"featured_image,omitempty"`
	ImageMime     string    `json:"image_mime_type,omitempty"`
	AuthorID      int64     `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasImage reports whether the article carries a featured image.
func (a *Article) HasImage() bool {
	return len(a.FeaturedImage) > 0 && a.ImageMime != ""
}
