package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// EnrollmentInput carries the data for a new enrollment.
type EnrollmentInput struct {
	UserID   string
	CourseID string
	Role     domain.Role
}

// EnrollmentService is the rule engine for course membership. HasRole is the
// sole course-scoped authorization primitive in the system.
type EnrollmentService interface {
	List(ctx context.Context) ([]*domain.Enrollment, error)
	Get(ctx context.Context, id string) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)
	Enroll(ctx context.Context, input EnrollmentInput) (*domain.Enrollment, error)
	Unenroll(ctx context.Context, userID, courseID string) error
	// UpdateRole overwrites the role in place. The (user, course) key pair is
	// unchanged, so the uniqueness invariant needs no re-check.
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Enrollment, error)
	// Find returns the enrollment for the pair, or nil when none exists.
	Find(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	HasRole(ctx context.Context, userID, courseID string, role domain.Role) (bool, error)
}
