package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

type stubArticleRepo struct {
	articles map[int64]*domain.Article
	nextID   int64
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int64]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) Create(_ context.Context, article *domain.Article) (int64, error) {
	r.nextID++
	copy := cloneArticle(article)
	copy.ID = r.nextID
	r.articles[copy.ID] = copy
	return copy.ID, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	if a, ok := r.articles[id]; ok {
		return cloneArticle(a), nil
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) ListNewest(_ context.Context, limit int) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, *a)
	}
	// Newest first by id; good enough for a stub.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ID > out[i].ID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubArticleRepo) UpdateOwned(_ context.Context, id, callerID int64, upd ports.ArticleUpdate) error {
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	if a.AuthorID != callerID {
		return domain.ErrForbidden
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.Image != nil {
		a.FeaturedImage = upd.Image.Data
		a.ImageMime = upd.Image.MimeType
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubArticleRepo) DeleteOwned(_ context.Context, id, callerID int64) error {
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	if a.AuthorID != callerID {
		return domain.ErrForbidden
	}
	delete(r.articles, id)
	return nil
}

func newArticleService(repo *stubArticleRepo) *ArticleService {
	return NewArticleService(repo, zerolog.Nop())
}

func TestArticleService_Create_RequiresAuthor(t *testing.T) {
	svc := newArticleService(newStubArticleRepo())

	if _, err := svc.Create(context.Background(), ports.CreateArticleInput{Title: "t", Content: "c"}); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing author, got %v", err)
	}
}

func TestArticleService_Create_WithImage(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	img := []byte{0x89, 0x50, 0x4e, 0x47}
	id, err := svc.Create(context.Background(), ports.CreateArticleInput{
		Title:    "Hello",
		Content:  "World",
		AuthorID: 1,
		Image:    &ports.ImageInput{Data: img, MimeType: "image/png"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	data, mime, err := svc.GetImage(context.Background(), id)
	if err != nil {
		t.Fatalf("get image failed: %v", err)
	}
	if !bytes.Equal(data, img) {
		t.Fatalf("image bytes differ after round trip")
	}
	if mime != "image/png" {
		t.Fatalf("unexpected mime type: %s", mime)
	}
}

func TestArticleService_GetImage_NoImage(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	id, _ := svc.Create(context.Background(), ports.CreateArticleInput{Title: "t", Content: "c", AuthorID: 1})
	if _, _, err := svc.GetImage(context.Background(), id); err != domain.ErrImageNotFound {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
	if _, _, err := svc.GetImage(context.Background(), 999); err != domain.ErrArticleNotFound {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_Update_OwnershipEnforced(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	id, _ := svc.Create(context.Background(), ports.CreateArticleInput{Title: "t", Content: "c", AuthorID: 1})

	title := "new title"
	err := svc.Update(context.Background(), ports.UpdateArticleInput{ID: id, Title: &title, CallerID: 2})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	if err := svc.Update(context.Background(), ports.UpdateArticleInput{ID: id, Title: &title, CallerID: 1}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}

	a, _ := svc.Get(context.Background(), id)
	if a.Title != "new title" {
		t.Fatalf("title not updated: %s", a.Title)
	}
	if a.Content != "c" {
		t.Fatalf("content should be unchanged, got %s", a.Content)
	}
}

func TestArticleService_Update_MergeKeepsImage(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	img := []byte("imgbytes")
	id, _ := svc.Create(context.Background(), ports.CreateArticleInput{
		Title: "t", Content: "c", AuthorID: 1,
		Image: &ports.ImageInput{Data: img, MimeType: "image/jpeg"},
	})

	title := "t2"
	if err := svc.Update(context.Background(), ports.UpdateArticleInput{ID: id, Title: &title, CallerID: 1}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	data, mime, err := svc.GetImage(context.Background(), id)
	if err != nil {
		t.Fatalf("image lost on update without new file: %v", err)
	}
	if !bytes.Equal(data, img) || mime != "image/jpeg" {
		t.Fatalf("image changed although no new file was supplied")
	}
}

func TestArticleService_Delete(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	id, _ := svc.Create(context.Background(), ports.CreateArticleInput{Title: "t", Content: "c", AuthorID: 1})

	if err := svc.Delete(context.Background(), id, 2); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), id, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), id); err != domain.ErrArticleNotFound {
		t.Fatalf("expected ErrArticleNotFound after delete, got %v", err)
	}
	// Deleting again yields not-found, never an internal error.
	if err := svc.Delete(context.Background(), id, 1); err != domain.ErrArticleNotFound {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_ListNewest_Bounded(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(repo)

	for i := 0; i < 5; i++ {
		_, _ = svc.Create(context.Background(), ports.CreateArticleInput{Title: "t", Content: "c", AuthorID: 1})
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 articles, got %d", len(all))
	}

	recent, err := svc.ListNewest(context.Background(), 3)
	if err != nil {
		t.Fatalf("list recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(recent))
	}
	if recent[0].ID < recent[1].ID {
		t.Fatalf("expected newest first ordering")
	}
}
