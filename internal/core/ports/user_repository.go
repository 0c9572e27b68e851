package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create persists a new user and returns its generated id.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdatePasswordByEmail replaces the stored hash. The bool reports whether
	// a row was actually updated.
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (bool, error)
	UpdateName(ctx context.Context, id int64, name string) (bool, error)
	UpdateProfilePicture(ctx context.Context, id int64, data []byte, mimeType string) (bool, error)
}
