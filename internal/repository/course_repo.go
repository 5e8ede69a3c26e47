package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

type CourseRepository struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	conn := r.db.Conn(ctx)

	var thumbnail sql.NullString
	if course.Thumbnail != nil {
		thumbnail = nullString(*course.Thumbnail)
	}

	err := conn.QueryRowContext(ctx, `
		INSERT INTO courses (id, name, description, instructor_name, thumbnail, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, course.ID, course.Name, course.Description, course.Instructor.Name, thumbnail, pq.Array(course.Tags)).
		Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	return nil
}

func (r *CourseRepository) Exists(ctx context.Context, courseID string) (bool, error) {
	conn := r.db.Conn(ctx)

	var exists bool
	err := conn.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)", courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

// GetCourse returns the course without its videos.
func (r *CourseRepository) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	conn := r.db.Conn(ctx)

	row := conn.QueryRowContext(ctx, `
		SELECT id, name, description, instructor_name, thumbnail, tags, created_at, updated_at
		FROM courses
		WHERE id = $1
	`, courseID)

	course, err := scanCourse(row)
	if err != nil {
		return nil, HandleNoRowsError(err)
	}
	return course, nil
}

func (r *CourseRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, description, instructor_name, thumbnail, tags, created_at, updated_at
		FROM courses
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	return courses, rows.Err()
}

func (r *CourseRepository) Touch(ctx context.Context, courseID string) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, "UPDATE courses SET updated_at = NOW() WHERE id = $1", courseID)
	if err != nil {
		return fmt.Errorf("failed to touch course %s: %w", courseID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var (
		course    domain.Course
		thumbnail sql.NullString
		tags      pq.StringArray
	)
	err := row.Scan(&course.ID, &course.Name, &course.Description, &course.Instructor.Name,
		&thumbnail, &tags, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if thumbnail.Valid {
		course.Thumbnail = &thumbnail.String
	}
	course.Tags = []string(tags)
	if course.Tags == nil {
		course.Tags = []string{}
	}
	course.Videos = []domain.Video{}
	return &course, nil
}
