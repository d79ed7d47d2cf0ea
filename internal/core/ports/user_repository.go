package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// Update persists name/email/updated_at changes for an existing user.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user. Dependent enrollments are removed by the store
	// (FK cascade).
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
