package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256-signed identity assertions carrying
// {id, email, exp}. Pure computation: no storage, no revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(userID int64, email string) (string, error) {
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (ports.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ports.Identity{}, domain.ErrInvalidToken
	}

	// Numeric claims decode as float64 from JSON.
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return ports.Identity{UserID: int64(id), Email: email}, nil
}
