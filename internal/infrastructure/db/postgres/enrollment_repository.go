package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openlearn/course-platform/internal/core/domain"
)

const enrollmentsPairConstraint = "enrollments_user_course_key"

// EnrollmentRepository implements ports.EnrollmentRepository on PostgreSQL.
type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

type enrollmentRow struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	CourseID   string    `db:"course_id"`
	Role       string    `db:"role"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

func (r enrollmentRow) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:         r.ID,
		UserID:     r.UserID,
		CourseID:   r.CourseID,
		Role:       domain.Role(r.Role),
		EnrolledAt: r.EnrolledAt,
	}
}

// Create inserts the enrollment row. A unique violation on the
// (user_id, course_id) index means the pair is already enrolled; that signal
// decides the winner between concurrent enrolls.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	query := `
		INSERT INTO enrollments (id, user_id, course_id, role, enrolled_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.UserID, e.CourseID, string(e.Role), e.EnrolledAt)
	if err != nil {
		if isUniqueViolation(err, enrollmentsPairConstraint) {
			return domain.ErrAlreadyEnrolled
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	var row enrollmentRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM enrollments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	var row enrollmentRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM enrollments WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment by pair: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EnrollmentRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	var rows []enrollmentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM enrollments WHERE user_id = $1 ORDER BY enrolled_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by user: %w", err)
	}
	return toDomainList(rows), nil
}

func (r *EnrollmentRepository) FindByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	var rows []enrollmentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM enrollments WHERE course_id = $1 ORDER BY enrolled_at DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}
	return toDomainList(rows), nil
}

func (r *EnrollmentRepository) FindAll(ctx context.Context) ([]*domain.Enrollment, error) {
	var rows []enrollmentRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM enrollments ORDER BY enrolled_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return toDomainList(rows), nil
}

func (r *EnrollmentRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE enrollments SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("update enrollment role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) DeleteByUserAndCourse(ctx context.Context, userID, courseID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM enrollments WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) HasRole(ctx context.Context, userID, courseID string, role domain.Role) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM enrollments
			WHERE user_id = $1 AND course_id = $2 AND role = $3
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, userID, courseID, string(role)); err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

func toDomainList(rows []enrollmentRow) []*domain.Enrollment {
	out := make([]*domain.Enrollment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
