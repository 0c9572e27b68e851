package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/api/metrics"
	"github.com/inkpress/blog-api/internal/core/ports"
	"github.com/inkpress/blog-api/internal/infrastructure/upload"
)

// UserHandler handles profile read and update.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile handles GET /api/users/profile (auth).
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/profile (auth, multipart, optional
// name field and profile_picture file). Profile pictures are buffered in
// memory, never written to disk.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name             formData  string  false  "Display name"
// @Param        profile_picture  formData  file    false  "Profile picture"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input := ports.UpdateProfileInput{
		UserID: callerID,
		Name:   c.FormValue("name"),
	}

	picture, err := formImage(c, "profile_picture", upload.ReadBuffered)
	if err != nil {
		return err
	}
	if picture != nil {
		metrics.ImageUploadBytes.WithLabelValues("profile").Observe(float64(len(picture.Data)))
		input.Picture = picture
	}

	if err := h.service.UpdateProfile(c.Request().Context(), input); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile updated"})
}
