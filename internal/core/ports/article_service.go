package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// ImageInput carries an uploaded image already read into memory.
type ImageInput struct {
	Data     []byte
	MimeType string
}

// CreateArticleInput carries all data needed to create an article.
// AuthorID is the authenticated caller and becomes the immutable owner.
type CreateArticleInput struct {
	Title    string
	Content  string
	Image    *ImageInput // optional
	AuthorID int64
}

// UpdateArticleInput is a merge-over-existing update: nil fields keep the
// stored values, the image is fully replaced only when a new file is supplied.
type UpdateArticleInput struct {
	ID       int64
	Title    *string
	Content  *string
	Image    *ImageInput
	CallerID int64
}

// ArticleService defines use-case operations for articles.
type ArticleService interface {
	ListAll(ctx context.Context) ([]domain.Article, error)
	ListNewest(ctx context.Context, limit int) ([]domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	// GetImage returns the stored image bytes and MIME type.
	// Returns domain.ErrImageNotFound when the article has no image.
	GetImage(ctx context.Context, id int64) ([]byte, string, error)
	Create(ctx context.Context, input CreateArticleInput) (int64, error)
	Update(ctx context.Context, input UpdateArticleInput) error
	Delete(ctx context.Context, id, callerID int64) error
}
