package ports

import "context"

// Profile is the public view of an account. ProfilePictureURL is a
// data:<mime>;base64,<bytes> value, or nil when no picture is stored.
type Profile struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// UpdateProfileInput applies whichever of {name, picture} is supplied.
// An empty Name and nil Picture is a no-op and fails with domain.ErrNoChange.
type UpdateProfileInput struct {
	UserID  int64
	Name    string      // empty = unchanged
	Picture *ImageInput // nil = unchanged
}

// UserService defines profile read and update operations.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) error
}
