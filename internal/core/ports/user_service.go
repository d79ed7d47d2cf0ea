package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// UpdateUserInput is a partial profile patch; nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// UserService defines use-case operations on the user directory.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
