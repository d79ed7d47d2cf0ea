package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// CreateCourseInput carries the data for a new catalog entry.
type CreateCourseInput struct {
	Title       string
	Description string
	Level       domain.CourseLevel
}

// UpdateCourseInput is a partial patch; nil fields are left unchanged.
type UpdateCourseInput struct {
	Title       *string
	Description *string
	Level       *domain.CourseLevel
}

// CourseService defines use-case operations for courses, including the
// professor-only mutation gate.
type CourseService interface {
	List(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	// Update applies the patch and stamps the update time. When actingUserID
	// is non-empty the caller must hold the PROFESSOR role in this course.
	Update(ctx context.Context, id string, input UpdateCourseInput, actingUserID string) (*domain.Course, error)
	// Delete removes the course and its enrollments. Guarded identically to
	// Update.
	Delete(ctx context.Context, id string, actingUserID string) error
	Count(ctx context.Context) (int64, error)
	// GetStats returns counts computed fresh from enrollment rows.
	GetStats(ctx context.Context, courseID string) (*domain.CourseStats, error)
}
