// Package access mirrors the server-side role policy for UI gating.
//
// It is advisory only: the predicates here decide what a client should show,
// never what the server allows. Enforcement stays in the service layer, which
// re-resolves roles from live enrollment rows on every mutation.
package access

import "github.com/openlearn/course-platform/internal/core/domain"

// Profile is a snapshot of one user's enrollments, typically fetched once per
// page render.
type Profile struct {
	UserID      string
	Enrollments []domain.Enrollment
}

// RoleIn returns the user's role in the course, if enrolled.
func (p Profile) RoleIn(courseID string) (domain.Role, bool) {
	for _, e := range p.Enrollments {
		if e.CourseID == courseID {
			return e.Role, true
		}
	}
	return "", false
}

// IsEnrolledIn reports whether the user holds any role in the course.
func (p Profile) IsEnrolledIn(courseID string) bool {
	_, ok := p.RoleIn(courseID)
	return ok
}

// HasRole reports whether the user holds exactly this role in the course.
func (p Profile) HasRole(courseID string, role domain.Role) bool {
	r, ok := p.RoleIn(courseID)
	return ok && r == role
}

// CanEditCourse hints whether an edit control should be shown.
func (p Profile) CanEditCourse(courseID string) bool {
	return p.HasRole(courseID, domain.RoleProfessor)
}

// CanDeleteCourse hints whether a delete control should be shown. Same policy
// as editing: enrolled professors only.
func (p Profile) CanDeleteCourse(courseID string) bool {
	return p.HasRole(courseID, domain.RoleProfessor)
}

// CanEnrollIn hints whether an enroll control should be shown.
func (p Profile) CanEnrollIn(courseID string) bool {
	return p.UserID != "" && !p.IsEnrolledIn(courseID)
}

// CanUnenrollFrom hints whether an unenroll control should be shown.
func (p Profile) CanUnenrollFrom(courseID string) bool {
	return p.UserID != "" && p.IsEnrolledIn(courseID)
}

// CanViewCourseDetails hints whether the detail view is reachable: any
// enrolled member of the course.
func (p Profile) CanViewCourseDetails(courseID string) bool {
	return p.IsEnrolledIn(courseID)
}

// IsProfessor reports whether the user teaches any course.
func (p Profile) IsProfessor() bool {
	for _, e := range p.Enrollments {
		if e.Role == domain.RoleProfessor {
			return true
		}
	}
	return false
}

// IsStudent reports whether the user studies in any course.
func (p Profile) IsStudent() bool {
	for _, e := range p.Enrollments {
		if e.Role == domain.RoleStudent {
			return true
		}
	}
	return false
}
