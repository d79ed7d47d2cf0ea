package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// CourseRepository implements ports.CourseRepository on PostgreSQL.
type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Level       string    `db:"level"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r courseRow) toDomain() *domain.Course {
	return &domain.Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Level:       domain.CourseLevel(r.Level),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (id, title, description, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Description, string(course.Level), course.CreatedAt, course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var row courseRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM courses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CourseRepository) FindAll(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	query := `SELECT * FROM courses`
	clauses := []string{}
	args := []interface{}{}

	if filter.Level != "" {
		args = append(args, filter.Level)
		clauses = append(clauses, fmt.Sprintf("level = $%d", len(args)))
	}
	if filter.HasEnrollments != nil {
		sub := "EXISTS (SELECT 1 FROM enrollments e WHERE e.course_id = courses.id)"
		if !*filter.HasEnrollments {
			sub = "NOT " + sub
		}
		clauses = append(clauses, sub)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC"

	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses := make([]*domain.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toDomain())
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, level = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Description, string(course.Level), course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// Delete removes the course; enrollments follow via ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// Stats runs a single aggregate over the live enrollment rows. No caching:
// counts must be current at response time.
func (r *CourseRepository) Stats(ctx context.Context, courseID string) (*domain.CourseStats, error) {
	var row struct {
		EnrollmentCount int `db:"enrollment_count"`
		StudentCount    int `db:"student_count"`
		ProfessorCount  int `db:"professor_count"`
	}
	query := `
		SELECT
			COUNT(*)                                    AS enrollment_count,
			COUNT(*) FILTER (WHERE role = 'STUDENT')    AS student_count,
			COUNT(*) FILTER (WHERE role = 'PROFESSOR')  AS professor_count
		FROM enrollments
		WHERE course_id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, courseID); err != nil {
		return nil, fmt.Errorf("course stats: %w", err)
	}
	return &domain.CourseStats{
		EnrollmentCount: row.EnrollmentCount,
		StudentCount:    row.StudentCount,
		ProfessorCount:  row.ProfessorCount,
	}, nil
}
