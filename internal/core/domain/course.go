package domain

import (
	"errors"
	"time"
)

// CourseLevel is the difficulty classification of a course. Closed set.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

var ErrCourseNotFound = errors.New("course not found")
var ErrInvalidLevel = errors.New("invalid course level")
var ErrForbidden = errors.New("access forbidden")

// Valid reports whether l is one of the known course levels.
func (l CourseLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Course is a catalog entry. Enrollment counts are never stored on it; they
// are derived from live enrollment rows on every read.
type Course struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Level       CourseLevel `json:"level"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CourseStats holds the derived per-course counts.
type CourseStats struct {
	EnrollmentCount int `json:"enrollment_count"`
	StudentCount    int `json:"student_count"`
	ProfessorCount  int `json:"professor_count"`
}
