package domain

import (
	"errors"
	"time"
)

// Role is a course-scoped role. It is meaningful only relative to a specific
// course via an Enrollment row, never globally on the User.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleProfessor Role = "PROFESSOR"
)

var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrAlreadyEnrolled = errors.New("user already enrolled in course")
var ErrInvalidRole = errors.New("invalid enrollment role")

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// Enrollment joins a User to a Course with exactly one role. The
// (UserID, CourseID) pair is unique: switching roles is an explicit update,
// never a second row.
type Enrollment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	Role       Role      `json:"role"`
	EnrolledAt time.Time `json:"enrolled_at"`
}
