package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, email, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePasswordByEmail(ctx context.Context, email, newPassword string) error {
	return s.changePasswordFn(ctx, email, newPassword)
}

func newJSONContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "a@x.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: 1, Name: name, Email: email, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, `{"name":"Alice","email":"a@x.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["id"] != float64(1) || resp["name"] != "Alice" {
		t.Fatalf("unexpected response: %v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("credential hash leaked in response")
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, `{"name":"Alice","email":"a@x.com","password":"secret1"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, `{"name":"Alice","email":"not-an-email","password":"secret1"}`)
	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "tok123", &domain.User{ID: 1, Name: "Alice", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, `{"email":"a@x.com","password":"pw1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] != "tok123" {
		t.Fatalf("token missing from response: %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, `{"email":"a@x.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ChangePassword_UnknownEmailIsGeneric(t *testing.T) {
	stub := &stubAuthService{
		changePasswordFn: func(context.Context, string, string) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, `{"email":"ghost@x.com","newPassword":"secret1"}`)
	err := h.ChangePasswordByEmail(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	// The message must not confirm whether the account exists.
	if msg, _ := he.Message.(string); strings.Contains(msg, "user") || strings.Contains(msg, "exist") {
		t.Fatalf("message confirms account existence: %v", he.Message)
	}
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	called := false
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, email, newPassword string) error {
			called = true
			if email != "a@x.com" || newPassword != "secret2" {
				t.Fatalf("unexpected args: %s %s", email, newPassword)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, `{"email":"a@x.com","newPassword":"secret2"}`)
	if err := h.ChangePasswordByEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
