package ports

// Identity is the verified subject of a signed token.
type Identity struct {
	UserID int64
	Email  string
}

// TokenService issues and verifies stateless signed identity assertions.
// Tokens are never persisted; expiry is the only invalidation mechanism.
type TokenService interface {
	Issue(userID int64, email string) (string, error)
	// Verify returns domain.ErrInvalidToken on a bad signature, wrong signing
	// method or expired assertion. There are no partial-validity states.
	Verify(token string) (Identity, error)
}
