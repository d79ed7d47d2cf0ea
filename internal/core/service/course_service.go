package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// CourseService implements the catalog use cases and the professor-only
// mutation gate. Course-scoped permission checks go through the enrollment
// rows; there is no other grant mechanism.
type CourseService struct {
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	log         zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, enrollments ports.EnrollmentRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, enrollments: enrollments, log: log}
}

func (s *CourseService) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	return s.courses.FindAll(ctx, filter)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	if !input.Level.Valid() {
		return nil, domain.ErrInvalidLevel
	}

	now := time.Now().UTC()
	course := &domain.Course{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Level:       input.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", course.ID).Str("level", string(course.Level)).Msg("course created")
	return course, nil
}

// Update applies a partial patch. When actingUserID is supplied, the actor
// must hold the PROFESSOR role in this course.
func (s *CourseService) Update(ctx context.Context, id string, input ports.UpdateCourseInput, actingUserID string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireProfessor(ctx, id, actingUserID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Level != nil {
		if !input.Level.Valid() {
			return nil, domain.ErrInvalidLevel
		}
		course.Level = *input.Level
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes the course; enrollments go with it (FK cascade). The guard
// is identical to Update's.
func (s *CourseService) Delete(ctx context.Context, id string, actingUserID string) error {
	if _, err := s.courses.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.requireProfessor(ctx, id, actingUserID); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("course_id", id).Str("acting_user_id", actingUserID).Msg("course deleted")
	return nil
}

func (s *CourseService) Count(ctx context.Context) (int64, error) {
	return s.courses.Count(ctx)
}

// GetStats computes counts fresh from live enrollment rows on every call.
func (s *CourseService) GetStats(ctx context.Context, courseID string) (*domain.CourseStats, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courses.Stats(ctx, courseID)
}

func (s *CourseService) requireProfessor(ctx context.Context, courseID, actingUserID string) error {
	if actingUserID == "" {
		return nil
	}
	isProfessor, err := s.enrollments.HasRole(ctx, actingUserID, courseID, domain.RoleProfessor)
	if err != nil {
		return err
	}
	if !isProfessor {
		return domain.ErrForbidden
	}
	return nil
}
