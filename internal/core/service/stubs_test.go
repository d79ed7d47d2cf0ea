package service

import (
	"context"
	"time"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. They mirror the
// store contract, including the unique constraints, and return clones so
// tests cannot mutate repository state through aliased pointers.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubCourseRepo struct {
	courses     map[string]*domain.Course
	enrollments *stubEnrollmentRepo // for Stats
}

func newStubCourseRepo(enrollments *stubEnrollmentRepo) *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course), enrollments: enrollments}
}

func cloneCourse(c *domain.Course) *domain.Course {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCourseRepo) Create(_ context.Context, course *domain.Course) error {
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

func (r *stubCourseRepo) FindAll(_ context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	out := make([]*domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		if filter.Level != "" && string(c.Level) != filter.Level {
			continue
		}
		if filter.HasEnrollments != nil {
			has := false
			for _, e := range r.enrollments.rows {
				if e.CourseID == c.ID {
					has = true
					break
				}
			}
			if has != *filter.HasEnrollments {
				continue
			}
		}
		out = append(out, cloneCourse(c))
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, course *domain.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	// Mirrors the FK cascade.
	for eid, e := range r.enrollments.rows {
		if e.CourseID == id {
			delete(r.enrollments.rows, eid)
		}
	}
	return nil
}

func (r *stubCourseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

func (r *stubCourseRepo) Stats(_ context.Context, courseID string) (*domain.CourseStats, error) {
	stats := &domain.CourseStats{}
	for _, e := range r.enrollments.rows {
		if e.CourseID != courseID {
			continue
		}
		stats.EnrollmentCount++
		switch e.Role {
		case domain.RoleStudent:
			stats.StudentCount++
		case domain.RoleProfessor:
			stats.ProfessorCount++
		}
	}
	return stats, nil
}

type stubEnrollmentRepo struct {
	rows map[string]*domain.Enrollment // by id
	// createErr, when set, is returned by Create even after a clean
	// pre-check. Simulates losing the unique-index race to a concurrent
	// enroll.
	createErr error
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{rows: make(map[string]*domain.Enrollment)}
}

func cloneEnrollment(e *domain.Enrollment) *domain.Enrollment {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, row := range r.rows {
		if row.UserID == e.UserID && row.CourseID == e.CourseID {
			return domain.ErrAlreadyEnrolled
		}
	}
	r.rows[e.ID] = cloneEnrollment(e)
	return nil
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id string) (*domain.Enrollment, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return cloneEnrollment(e), nil
}

func (r *stubEnrollmentRepo) FindByUserAndCourse(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	for _, e := range r.rows {
		if e.UserID == userID && e.CourseID == courseID {
			return cloneEnrollment(e), nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *stubEnrollmentRepo) FindByUser(_ context.Context, userID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.rows {
		if e.UserID == userID {
			out = append(out, cloneEnrollment(e))
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) FindByCourse(_ context.Context, courseID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.rows {
		if e.CourseID == courseID {
			out = append(out, cloneEnrollment(e))
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) FindAll(_ context.Context) ([]*domain.Enrollment, error) {
	out := make([]*domain.Enrollment, 0, len(r.rows))
	for _, e := range r.rows {
		out = append(out, cloneEnrollment(e))
	}
	return out, nil
}

func (r *stubEnrollmentRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	e, ok := r.rows[id]
	if !ok {
		return domain.ErrEnrollmentNotFound
	}
	e.Role = role
	return nil
}

func (r *stubEnrollmentRepo) DeleteByUserAndCourse(_ context.Context, userID, courseID string) error {
	for id, e := range r.rows {
		if e.UserID == userID && e.CourseID == courseID {
			delete(r.rows, id)
			return nil
		}
	}
	return domain.ErrEnrollmentNotFound
}

func (r *stubEnrollmentRepo) HasRole(_ context.Context, userID, courseID string, role domain.Role) (bool, error) {
	for _, e := range r.rows {
		if e.UserID == userID && e.CourseID == courseID && e.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// stubRevoker is an in-memory TokenRevoker.
type stubRevoker struct {
	revoked map[string]bool
	err     error // returned by IsRevoked when set
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (r *stubRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.revoked[token], nil
}

func (r *stubRevoker) Revoke(_ context.Context, token string, _ time.Duration) error {
	r.revoked[token] = true
	return nil
}
