package ports

import (
	"context"
	"time"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthPayload is returned by Register and Login.
type AuthPayload struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService implements credential and identity handling.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthPayload, error)
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	// ValidateToken resolves a bearer token to its user. It fails closed:
	// any verification failure (expired, malformed, revoked, unknown user)
	// yields a nil user, never an error.
	ValidateToken(ctx context.Context, token string) *domain.User
	// Logout revokes the token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
