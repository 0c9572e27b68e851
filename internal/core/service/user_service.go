package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

// UserService implements profile read and update.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ports.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &ports.Profile{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	if len(user.ProfilePicture) > 0 && user.ProfilePictureMime != "" {
		url := fmt.Sprintf("data:%s;base64,%s",
			user.ProfilePictureMime,
			base64.StdEncoding.EncodeToString(user.ProfilePicture))
		profile.ProfilePictureURL = &url
	}

	return profile, nil
}

// UpdateProfile applies whichever of {name, picture} is supplied and fails
// with ErrNoChange when neither resulted in a persisted change.
func (s *UserService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) error {
	changed := false

	if input.Picture != nil {
		ok, err := s.repo.UpdateProfilePicture(ctx, input.UserID, input.Picture.Data, input.Picture.MimeType)
		if err != nil {
			return err
		}
		changed = changed || ok
	}

	if input.Name != "" {
		ok, err := s.repo.UpdateName(ctx, input.UserID, input.Name)
		if err != nil {
			return err
		}
		changed = changed || ok
	}

	if !changed {
		return domain.ErrNoChange
	}

	s.logger.Info().Int64("user_id", input.UserID).Msg("profile updated")
	return nil
}
