package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrNoChange = errors.New("no change detected")

// User models a registered account. The password hash and the raw profile
// picture bytes never leave the server through JSON.
type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	ProfilePicture     []byte    `json:"-"`
	ProfilePictureMime string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
