package ports

import (
	"context"

	"github.com/inkpress/blog-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed token and the caller's profile. Unknown email and
	// wrong password both yield domain.ErrInvalidCredentials so the two cases
	// are indistinguishable to the client.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePasswordByEmail(ctx context.Context, email, newPassword string) error
}

// LoginThrottle limits failed login attempts per account. Implementations
// should fail open: an unavailable backend must not lock out authentication.
type LoginThrottle interface {
	TooManyAttempts(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}
