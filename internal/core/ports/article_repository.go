package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// ArticleUpdate is an explicit field-update set: nil means "unchanged".
// The repository merges it over the freshly fetched row inside a single
// transaction so the ownership check and the write cannot interleave with a
// concurrent mutation.
type ArticleUpdate struct {
	Title   *string
	Content *string
	Image   *ImageUpdate
}

// ImageUpdate fully replaces the stored featured image.
type ImageUpdate struct {
	Data     []byte
	MimeType string
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	// Create persists a new article and returns its generated id.
	Create(ctx context.Context, article *domain.Article) (int64, error)
	// FindByID returns the full row including image bytes.
	// Returns domain.ErrArticleNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	// ListNewest returns articles joined with the author display name, newest
	// first. limit <= 0 means unbounded.
	ListNewest(ctx context.Context, limit int) ([]domain.Article, error)
	// UpdateOwned merges upd over the current row after verifying that
	// callerID owns the article. Returns domain.ErrArticleNotFound or
	// domain.ErrForbidden; the check and the write share one transaction.
	UpdateOwned(ctx context.Context, id, callerID int64, upd ArticleUpdate) error
	// DeleteOwned removes the article after the same ownership check.
	DeleteOwned(ctx context.Context, id, callerID int64) error
}
