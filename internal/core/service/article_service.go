package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// ArticleService implements article CRUD with ownership enforcement.
// Only the author recorded at creation may mutate or delete an article.
type ArticleService struct {
	repo   ports.ArticleRepository
	logger zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

func (s *ArticleService) ListAll(ctx context.Context) ([]domain.Article, error) {
	return s.repo.ListNewest(ctx, 0)
}

func (s *ArticleService) ListNewest(ctx context.Context, limit int) ([]domain.Article, error) {
	return s.repo.ListNewest(ctx, limit)
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ArticleService) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !article.HasImage() {
		return nil, "", domain.ErrImageNotFound
	}
	return article.FeaturedImage, article.ImageMime, nil
}

func (s *ArticleService) Create(ctx context.Context, input ports.CreateArticleInput) (int64, error) {
	// The gate already rejects anonymous requests; this guards direct callers.
	if input.AuthorID <= 0 {
		return 0, domain.ErrInvalidToken
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  input.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Image != nil {
		article.FeaturedImage = input.Image.Data
		article.ImageMime = input.Image.MimeType
	}

	id, err := s.repo.Create(ctx, article)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create article")
		return 0, err
	}

	s.logger.Info().Int64("article_id", id).Int64("author_id", input.AuthorID).Msg("article created")
	return id, nil
}

func (s *ArticleService) Update(ctx context.Context, input ports.UpdateArticleInput) error {
	if input.CallerID <= 0 {
		return domain.ErrInvalidToken
	}

	upd := ports.ArticleUpdate{Title: input.Title, Content: input.Content}
	if input.Image != nil {
		upd.Image = &ports.ImageUpdate{Data: input.Image.Data, MimeType: input.Image.MimeType}
	}

	if err := s.repo.UpdateOwned(ctx, input.ID, input.CallerID, upd); err != nil {
		return err
	}

	s.logger.Info().Int64("article_id", input.ID).Msg("article updated")
	return nil
}

func (s *ArticleService) Delete(ctx context.Context, id, callerID int64) error {
	if callerID <= 0 {
		return domain.ErrInvalidToken
	}

	if err := s.repo.DeleteOwned(ctx, id, callerID); err != nil {
		return err
	}

	s.logger.Info().Int64("article_id", id).Msg("article deleted")
	return nil
}
