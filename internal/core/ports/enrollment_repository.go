package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollments.
//
// Create must surface the store's unique-constraint violation on
// (user_id, course_id) as domain.ErrAlreadyEnrolled: that constraint is the
// authoritative signal for "already enrolled" under concurrent enrolls.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.Enrollment) error
	FindByID(ctx context.Context, id string) (*domain.Enrollment, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	FindByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error)
	FindAll(ctx context.Context) ([]*domain.Enrollment, error)
	// UpdateRole overwrites the role on an existing enrollment in place.
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	DeleteByUserAndCourse(ctx context.Context, userID, courseID string) error
	// HasRole reports whether an enrollment row exists with exactly this
	// (userID, courseID, role) triple.
	HasRole(ctx context.Context, userID, courseID string, role domain.Role) (bool, error)
}
