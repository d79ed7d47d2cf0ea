package ports

import (
	"context"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// CourseFilter carries the optional catalog query parameters.
type CourseFilter struct {
	Level string // empty = all levels
	// HasEnrollments filters by whether any enrollment row exists for the
	// course. Nil = no filter.
	HasEnrollments *bool
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindAll(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	// Delete removes the course. Dependent enrollments are removed by the
	// store (FK cascade).
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	// Stats computes the derived counts from live enrollment rows. Never
	// cached: enrollment can change between reads.
	Stats(ctx context.Context, courseID string) (*domain.CourseStats, error)
}
