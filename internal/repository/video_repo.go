package repository

import (
	"context"
	"fmt"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/database"
)

type VideoRepository struct {
	db *database.DB
}

func NewVideoRepository(db *database.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Exists(ctx context.Context, courseID, videoID string) (bool, error) {
	conn := r.db.Conn(ctx)

	var exists bool
	err := conn.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM course_videos WHERE course_id = $1 AND id = $2)",
		courseID, videoID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return exists, nil
}

// AppendVideo stores the video after the last one of the course.
func (r *VideoRepository) AppendVideo(ctx context.Context, courseID string, video domain.Video) error {
	conn := r.db.Conn(ctx)

	_, err := conn.ExecContext(ctx, `
		INSERT INTO course_videos (id, course_id, position, title, description, url, duration)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1, $3, $4, $5, $6
		FROM course_videos
		WHERE course_id = $2
	`, video.ID, courseID, video.Title, video.Description, video.URL, video.Duration)
	if err != nil {
		return fmt.Errorf("failed to insert video %s: %w", video.ID, HandleUniqueError(err))
	}

	return nil
}

func (r *VideoRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Video, error) {
	conn := r.db.Conn(ctx)

	rows, err := conn.QueryContext(ctx, `
		SELECT id, title, description, url, duration
		FROM course_videos
		WHERE course_id = $1
		ORDER BY position
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var v domain.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.Duration); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}

	return videos, rows.Err()
}
