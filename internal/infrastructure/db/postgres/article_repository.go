package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// ArticleRepository persists articles. Ownership-guarded mutations run the
// check and the write inside one transaction with a row lock, so a racing
// update or delete cannot slip between them.
type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (int64, error) {
	query := `
		INSERT INTO articles (title, content, featured_image, image_mime_type, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var image []byte
	var mimeType sql.NullString
	if article.HasImage() {
		image = article.FeaturedImage
		mimeType = sql.NullString{String: article.ImageMime, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, image, mimeType,
		article.AuthorID, article.CreatedAt, article.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}

	return id, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	query := `
		SELECT a.id, a.title, a.content, a.featured_image, a.image_mime_type,
		       a.author_id, u.name, a.created_at, a.updated_at
		FROM articles a
		JOIN users u ON a.author_id = u.id
		WHERE a.id = $1`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}

	return article, nil
}

func (r *ArticleRepository) ListNewest(ctx context.Context, limit int) ([]domain.Article, error) {
	query := `
		SELECT a.id, a.title, a.content, a.featured_image, a.image_mime_type,
		       a.author_id, u.name, a.created_at, a.updated_at
		FROM articles a
		JOIN users u ON a.author_id = u.id
		ORDER BY a.created_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

// UpdateOwned merges upd over the stored row. The row is locked for the
// duration of the transaction so the ownership check cannot go stale.
func (r *ArticleRepository) UpdateOwned(ctx context.Context, id, callerID int64, upd ports.ArticleUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	current, err := lockArticle(ctx, tx, id, callerID)
	if err != nil {
		return err
	}

	title := current.Title
	content := current.Content
	image := current.FeaturedImage
	mimeType := current.ImageMime
	if upd.Title != nil {
		title = *upd.Title
	}
	if upd.Content != nil {
		content = *upd.Content
	}
	if upd.Image != nil {
		image = upd.Image.Data
		mimeType = upd.Image.MimeType
	}

	query := `
		UPDATE articles
		SET title = $1, content = $2, featured_image = $3, image_mime_type = $4, updated_at = now()
		WHERE id = $5`

	if _, err := tx.ExecContext(ctx, query, title, content, image, nullString(mimeType), id); err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func (r *ArticleRepository) DeleteOwned(ctx context.Context, id, callerID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockArticle(ctx, tx, id, callerID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrArticleNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// lockArticle fetches the row FOR UPDATE and verifies ownership.
func lockArticle(ctx context.Context, tx *sql.Tx, id, callerID int64) (*domain.Article, error) {
	query := `
		SELECT id, title, content, featured_image, image_mime_type, author_id
		FROM articles
		WHERE id = $1
		FOR UPDATE`

	article := &domain.Article{}
	var image []byte
	var mimeType sql.NullString
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &image, &mimeType, &article.AuthorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("lock article: %w", err)
	}

	if article.AuthorID != callerID {
		return nil, domain.ErrForbidden
	}

	article.FeaturedImage = image
	if mimeType.Valid {
		article.ImageMime = mimeType.String
	}
	return article, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	article := &domain.Article{}
	var image []byte
	var mimeType sql.NullString

	err := row.Scan(
		&article.ID, &article.Title, &article.Content, &image, &mimeType,
		&article.AuthorID, &article.AuthorName, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.FeaturedImage = image
	if mimeType.Valid {
		article.ImageMime = mimeType.String
	}
	return article, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
