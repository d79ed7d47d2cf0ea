package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// EnrollmentService enforces the membership rules: one enrollment per
// (user, course) pair, role switches only via explicit update.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
	users       ports.UserRepository
	courses     ports.CourseRepository
	log         zerolog.Logger
}

func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	users ports.UserRepository,
	courses ports.CourseRepository,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, users: users, courses: courses, log: log}
}

func (s *EnrollmentService) List(ctx context.Context) ([]*domain.Enrollment, error) {
	return s.enrollments.FindAll(ctx)
}

func (s *EnrollmentService) Get(ctx context.Context, id string) (*domain.Enrollment, error) {
	return s.enrollments.FindByID(ctx, id)
}

func (s *EnrollmentService) ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.enrollments.FindByUser(ctx, userID)
}

func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.enrollments.FindByCourse(ctx, courseID)
}

// Enroll creates a membership row. Two concurrent enrolls for the same pair
// yield exactly one success: the pre-check is advisory, the unique constraint
// surfaced by the repository as ErrAlreadyEnrolled is authoritative.
func (s *EnrollmentService) Enroll(ctx context.Context, input ports.EnrollmentInput) (*domain.Enrollment, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.courses.FindByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	existing, err := s.enrollments.FindByUserAndCourse(ctx, input.UserID, input.CourseID)
	if err != nil && !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyEnrolled
	}

	e := &domain.Enrollment{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CourseID:   input.CourseID,
		Role:       input.Role,
		EnrolledAt: time.Now().UTC(),
	}

	if err := s.enrollments.Create(ctx, e); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", e.UserID).
		Str("course_id", e.CourseID).
		Str("role", string(e.Role)).
		Msg("user enrolled")

	return e, nil
}

func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	if _, err := s.enrollments.FindByUserAndCourse(ctx, userID, courseID); err != nil {
		return err
	}

	if err := s.enrollments.DeleteByUserAndCourse(ctx, userID, courseID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Str("course_id", courseID).Msg("user unenrolled")
	return nil
}

// UpdateRole is the only way to switch between STUDENT and PROFESSOR. The
// (user, course) key pair is unchanged, so uniqueness needs no re-check.
func (s *EnrollmentService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Enrollment, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	e, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.enrollments.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	e.Role = role
	return e, nil
}

// Find returns the enrollment for the pair, or nil when none exists.
func (s *EnrollmentService) Find(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	e, err := s.enrollments.FindByUserAndCourse(ctx, userID, courseID)
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, nil
	}
	return e, err
}

func (s *EnrollmentService) HasRole(ctx context.Context, userID, courseID string, role domain.Role) (bool, error) {
	return s.enrollments.HasRole(ctx, userID, courseID, role)
}
