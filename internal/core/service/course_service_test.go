package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

type courseFixture struct {
	courses     *stubCourseRepo
	enrollments *stubEnrollmentRepo
	svc         *CourseService
}

func newCourseFixture() *courseFixture {
	enrollments := newStubEnrollmentRepo()
	courses := newStubCourseRepo(enrollments)
	return &courseFixture{
		courses:     courses,
		enrollments: enrollments,
		svc:         NewCourseService(courses, enrollments, zerolog.Nop()),
	}
}

func (f *courseFixture) seedCourse(id string, level domain.CourseLevel) {
	f.courses.courses[id] = &domain.Course{ID: id, Title: "Course " + id, Level: level}
}

func (f *courseFixture) seedEnrollment(id, userID, courseID string, role domain.Role) {
	f.enrollments.rows[id] = &domain.Enrollment{ID: id, UserID: userID, CourseID: courseID, Role: role}
}

func strPtr(s string) *string { return &s }

func TestCourseService_Create(t *testing.T) {
	f := newCourseFixture()

	course, err := f.svc.Create(context.Background(), ports.CreateCourseInput{
		Title: "Intro to Go", Description: "basics", Level: domain.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.ID == "" || course.CreatedAt.IsZero() {
		t.Fatalf("expected populated course, got %+v", course)
	}
}

func TestCourseService_Create_InvalidLevel(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateCourseInput{Title: "x", Level: "EXPERT"})
	if !errors.Is(err, domain.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestCourseService_GetStats(t *testing.T) {
	f := newCourseFixture()
	f.seedCourse("c1", domain.LevelIntermediate)
	f.seedEnrollment("e1", "u1", "c1", domain.RoleStudent)
	f.seedEnrollment("e2", "u2", "c1", domain.RoleStudent)
	f.seedEnrollment("e3", "u3", "c1", domain.RoleStudent)
	f.seedEnrollment("e4", "u4", "c1", domain.RoleProfessor)
	// Noise in another course must not leak in.
	f.seedCourse("c2", domain.LevelBeginner)
	f.seedEnrollment("e5", "u1", "c2", domain.RoleProfessor)

	stats, err := f.svc.GetStats(context.Background(), "c1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.EnrollmentCount != 4 || stats.StudentCount != 3 || stats.ProfessorCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCourseService_GetStats_UnknownCourse(t *testing.T) {
	f := newCourseFixture()

	if _, err := f.svc.GetStats(context.Background(), "ghost"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_Update_ProfessorOnly(t *testing.T) {
	f := newCourseFixture()
	f.seedCourse("c1", domain.LevelBeginner)
	f.seedEnrollment("e1", "student", "c1", domain.RoleStudent)
	f.seedEnrollment("e2", "prof", "c1", domain.RoleProfessor)

	// A student in the course may not mutate it.
	if _, err := f.svc.Update(context.Background(), "c1", ports.UpdateCourseInput{Title: strPtr("hack")}, "student"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student, got %v", err)
	}
	// Neither may a stranger.
	if _, err := f.svc.Update(context.Background(), "c1", ports.UpdateCourseInput{Title: strPtr("hack")}, "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member, got %v", err)
	}

	level := domain.LevelAdvanced
	updated, err := f.svc.Update(context.Background(), "c1", ports.UpdateCourseInput{
		Title: strPtr("New Title"), Level: &level,
	}, "prof")
	if err != nil {
		t.Fatalf("professor update failed: %v", err)
	}
	if updated.Title != "New Title" || updated.Level != domain.LevelAdvanced {
		t.Fatalf("patch not applied: %+v", updated)
	}
	// Untouched fields survive the patch.
	if updated.Description != f.courses.courses["c1"].Description {
		t.Fatalf("description changed unexpectedly")
	}
}

func TestCourseService_Update_NotFound(t *testing.T) {
	f := newCourseFixture()

	if _, err := f.svc.Update(context.Background(), "ghost", ports.UpdateCourseInput{}, "prof"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_Update_InvalidLevel(t *testing.T) {
	f := newCourseFixture()
	f.seedCourse("c1", domain.LevelBeginner)

	bad := domain.CourseLevel("EXPERT")
	if _, err := f.svc.Update(context.Background(), "c1", ports.UpdateCourseInput{Level: &bad}, ""); !errors.Is(err, domain.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestCourseService_Delete_GuardMatchesUpdate(t *testing.T) {
	f := newCourseFixture()
	f.seedCourse("c1", domain.LevelBeginner)
	f.seedEnrollment("e1", "student", "c1", domain.RoleStudent)
	f.seedEnrollment("e2", "prof", "c1", domain.RoleProfessor)

	if err := f.svc.Delete(context.Background(), "c1", "student"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for student delete, got %v", err)
	}
	if _, ok := f.courses.courses["c1"]; !ok {
		t.Fatalf("course deleted despite forbidden actor")
	}

	if err := f.svc.Delete(context.Background(), "c1", "prof"); err != nil {
		t.Fatalf("professor delete failed: %v", err)
	}
	if _, ok := f.courses.courses["c1"]; ok {
		t.Fatalf("course still present after delete")
	}
	// FK cascade takes the membership rows with it.
	if len(f.enrollments.rows) != 0 {
		t.Fatalf("expected enrollments cascaded, %d remain", len(f.enrollments.rows))
	}
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	f := newCourseFixture()

	if err := f.svc.Delete(context.Background(), "ghost", "prof"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_List_Filter(t *testing.T) {
	f := newCourseFixture()
	f.seedCourse("c1", domain.LevelBeginner)
	f.seedCourse("c2", domain.LevelAdvanced)
	f.seedEnrollment("e1", "u1", "c1", domain.RoleStudent)

	byLevel, err := f.svc.List(context.Background(), ports.CourseFilter{Level: "ADVANCED"})
	if err != nil || len(byLevel) != 1 || byLevel[0].ID != "c2" {
		t.Fatalf("level filter wrong: %v %v", byLevel, err)
	}

	has := true
	populated, err := f.svc.List(context.Background(), ports.CourseFilter{HasEnrollments: &has})
	if err != nil || len(populated) != 1 || populated[0].ID != "c1" {
		t.Fatalf("has_enrollments filter wrong: %v %v", populated, err)
	}

	all, err := f.svc.List(context.Background(), ports.CourseFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 courses, got %d (%v)", len(all), err)
	}
}
