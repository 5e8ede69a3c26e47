package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/repository"
	"github.com/ynastt/course-admin/pkg/database"
)

type CourseRepository interface {
	CreateCourse(ctx context.Context, course *domain.Course) error
	Exists(ctx context.Context, courseID string) (bool, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	Touch(ctx context.Context, courseID string) error
}

type VideoRepository interface {
	Exists(ctx context.Context, courseID, videoID string) (bool, error)
	AppendVideo(ctx context.Context, courseID string, video domain.Video) error
	ListByCourse(ctx context.Context, courseID string) ([]domain.Video, error)
}

type CourseService struct {
	courseRepo CourseRepository
	videoRepo  VideoRepository
	txManager  database.TransactionManagerInterface
	lg         *slog.Logger
}

func NewCourseService(courseRepo CourseRepository,
	videoRepo VideoRepository,
	txManager database.TransactionManagerInterface,
	lg *slog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		videoRepo:  videoRepo,
		txManager:  txManager,
		lg:         lg,
	}
}

func (s *CourseService) CreateCourse(ctx context.Context, req domain.CreateCourseRequest) (*domain.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	course := &domain.Course{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Instructor:  req.Instructor,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Videos:      []domain.Video{},
	}
	if course.Tags == nil {
		course.Tags = []string{}
	}

	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.lg.Info("course created", slog.String("course_id", course.ID), slog.String("name", course.Name))
	return course, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourse returns the course with its videos in upload order.
func (s *CourseService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return nil, domain.ErrCourseNotFound
	}

	course, err := s.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	videos, err := s.videoRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course videos: %w", err)
	}
	course.Videos = videos

	return course, nil
}

// AddVideo appends video to the end of the course's video list.
func (s *CourseService) AddVideo(ctx context.Context, courseID string, video domain.Video) (*domain.Video, error) {
	log := s.lg.With(
		slog.String("course_id", courseID),
		slog.String("video_id", video.ID),
	)

	if _, err := uuid.Parse(courseID); err != nil {
		return nil, domain.ErrCourseNotFound
	}
	if err := video.Validate(); err != nil {
		return nil, err
	}
	if video.Duration == "" {
		video.Duration = domain.PendingDuration
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		exists, err := s.courseRepo.Exists(txCtx, courseID)
		if err != nil {
			return fmt.Errorf("failed to check course existence: %w", err)
		}
		if !exists {
			return domain.ErrCourseNotFound
		}

		attached, err := s.videoRepo.Exists(txCtx, courseID, video.ID)
		if err != nil {
			return fmt.Errorf("failed to check video existence: %w", err)
		}
		if attached {
			return domain.ErrVideoExists
		}

		if err := s.videoRepo.AppendVideo(txCtx, courseID, video); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.ErrVideoExists
			}
			return fmt.Errorf("failed to add video: %w", err)
		}

		return s.courseRepo.Touch(txCtx, courseID)
	})
	if err != nil {
		log.Error("failed to add video to course", slog.Any("error", err))
		return nil, err
	}

	log.Info("video added to course", slog.String("title", video.Title))
	return &video, nil
}
