package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openlearn/course-platform/internal/api"
	"github.com/openlearn/course-platform/internal/api/handler"
	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// stubAuthService drives the handler without a real service stack.
type stubAuthService struct {
	registerErr error
	loginErr    error
	loggedOut   []string
}

func (s *stubAuthService) payload(email string) *ports.AuthPayload {
	return &ports.AuthPayload{
		User:      &domain.User{ID: "u1", Name: "Test", Email: email},
		Token:     "issued-token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*ports.AuthPayload, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.payload(input.Email), nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.AuthPayload, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.payload(email), nil
}

func (s *stubAuthService) ValidateToken(_ context.Context, token string) *domain.User {
	if token == "issued-token" {
		return &domain.User{ID: "u1", Name: "Test", Email: "t@example.com"}
	}
	return nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newAuthTestServer(auth ports.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(auth)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", h.Logout)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})

	rec := postJSON(e, "/auth/register", `{"name":"Test","email":"t@example.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token == "" || resp.User == nil || resp.User.Email != "t@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"t@example.com","password":"secret1"}`},
		{"bad email", `{"name":"T","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"T","email":"t@example.com","password":"abc"}`},
		{"malformed json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(e, "/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{registerErr: domain.ErrEmailTaken})

	rec := postJSON(e, "/auth/register", `{"name":"Test","email":"t@example.com","password":"secret1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})

	rec := postJSON(e, "/auth/login", `{"email":"t@example.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	rec := postJSON(e, "/auth/login", `{"email":"t@example.com","password":"wrong1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad error envelope: %v", err)
	}
	if resp["error"] == "" {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{}
	e := newAuthTestServer(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "issued-token" {
		t.Fatalf("token not handed to the service: %v", stub.loggedOut)
	}
}

func TestAuthHandler_Logout_MissingHeader(t *testing.T) {
	e := newAuthTestServer(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
