package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/api/metrics"
	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
	"github.com/inkpress/blog-api/internal/infrastructure/upload"
)

const (
	recentArticlesLimit   = 3
	newArticlesLimit      = 4
	featuredArticlesLimit = 1
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /api/articles — every article, newest first.
//
// @Summary      List all articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  domain.Article
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// Recent handles GET /api/articles/recent — the three newest articles.
//
// @Summary      List recent articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  domain.Article
// @Router       /api/articles/recent [get]
func (h *ArticleHandler) Recent(c echo.Context) error {
	articles, err := h.service.ListNewest(c.Request().Context(), recentArticlesLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// New handles GET /api/articles/new — the four newest articles.
//
// @Summary      List new articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  domain.Article
// @Router       /api/articles/new [get]
func (h *ArticleHandler) New(c echo.Context) error {
	articles, err := h.service.ListNewest(c.Request().Context(), newArticlesLimit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// Featured handles GET /api/articles/featured — the single newest article.
//
// @Summary      Get the featured article
// @Tags         articles
// @Produce      json
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/featured [get]
func (h *ArticleHandler) Featured(c echo.Context) error {
	articles, err := h.service.ListNewest(c.Request().Context(), featuredArticlesLimit)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return domain.ErrArticleNotFound
	}
	return c.JSON(http.StatusOK, articles[0])
}

// Get handles GET /api/articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article id"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// GetImage handles GET /api/articles/:id/image — streams the stored blob
// with its recorded MIME type as the response content type.
//
// @Summary      Get an article's featured image
// @Tags         articles
// @Produce      octet-stream
// @Param        id   path  int  true  "Article id"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id}/image [get]
func (h *ArticleHandler) GetImage(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	data, mimeType, err := h.service.GetImage(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeType, data)
}

// Create handles POST /api/articles (auth, multipart, optional featured_image).
//
// @Summary      Create an article
// @Tags         articles
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title           formData  string  true   "Title"
// @Param        content         formData  string  true   "Content"
// @Param        featured_image  formData  file    false  "Featured image"
// @Success      201  {object}  createArticleResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input := ports.CreateArticleInput{
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
		AuthorID: callerID,
	}
	if input.Title == "" || input.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and content are required")
	}

	image, err := formImage(c, "featured_image", upload.ReadSpooled)
	if err != nil {
		return err
	}
	if image != nil {
		metrics.ImageUploadBytes.WithLabelValues("article").Observe(float64(len(image.Data)))
		input.Image = image
	}

	id, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createArticleResponse{ID: id, Message: "article created"})
}

// Update handles PUT /api/articles/:id (auth, multipart). Supplied fields
// are merged over the stored row; the image is replaced only when a new
// file arrives.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id              path      int     true   "Article id"
// @Param        title           formData  string  false  "Title"
// @Param        content         formData  string  false  "Content"
// @Param        featured_image  formData  file    false  "Featured image"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := articleID(c)
	if err != nil {
		return err
	}

	input := ports.UpdateArticleInput{ID: id, CallerID: callerID}
	if title := c.FormValue("title"); title != "" {
		input.Title = &title
	}
	if content := c.FormValue("content"); content != "" {
		input.Content = &content
	}

	image, err := formImage(c, "featured_image", upload.ReadSpooled)
	if err != nil {
		return err
	}
	if image != nil {
		metrics.ImageUploadBytes.WithLabelValues("article").Observe(float64(len(image.Data)))
		input.Image = image
	}

	if err := h.service.Update(c.Request().Context(), input); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "article updated"})
}

// Delete handles DELETE /api/articles/:id (auth).
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := articleID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, callerID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "article deleted"})
}

func articleID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}
	return id, nil
}

// formImage extracts an optional image upload from the multipart form.
// A missing file is not an error; read is the strategy for getting the
// bytes (temp-file spool for articles, in-memory for profile pictures).
func formImage(c echo.Context, field string, read func(*multipart.FileHeader) ([]byte, string, error)) (*ports.ImageInput, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	data, mimeType, err := read(fh)
	if err != nil {
		return nil, err
	}
	return &ports.ImageInput{Data: data, MimeType: mimeType}, nil
}
