// Package coursedetail drives the course page: course header, video grid
// and the dialog that attaches a freshly uploaded video.
package coursedetail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ynastt/course-admin/internal/client"
	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/view"
)

const (
	MsgFillAllFields = "Please fill all fields before adding a video."
	msgUploaded      = "Video uploaded successfully!"
	msgAdded         = "Video added successfully!"
	msgAddFailed     = "Error adding video to course."
)

type API interface {
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	AddVideoToCourse(ctx context.Context, courseID string, video domain.Video) error
}

type View struct {
	api             API
	notifier        view.Notifier
	playbackBaseURL string
	lg              *slog.Logger

	gen     view.Generation
	history view.History

	mu    sync.Mutex
	state State
}

func New(api API, notifier view.Notifier, playbackBaseURL string, lg *slog.Logger) *View {
	return &View{
		api:             api,
		notifier:        notifier,
		playbackBaseURL: playbackBaseURL,
		lg:              lg.With(slog.String("view", "course_detail")),
	}
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

func (v *View) History() []string {
	return v.history.Actions()
}

func (v *View) update(action string, fn func(s *State) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := fn(&v.state); err != nil {
		return err
	}
	v.history.Record(action)
	v.lg.Debug("state updated", slog.String("action", action))
	return nil
}

func (v *View) apply(token uint64, action string, fn func(s *State)) error {
	return v.update(action, func(s *State) error {
		if !v.gen.Valid(token) {
			v.lg.Debug("discarding stale result", slog.String("action", action))
			return view.ErrStale
		}
		fn(s)
		return nil
	})
}

// Mount loads the course named by routePath. A failed or empty lookup marks
// the view not found and returns domain.ErrCourseNotFound so the caller can
// route to its not-found page.
func (v *View) Mount(ctx context.Context, routePath string) error {
	courseID := CourseIDFromPath(routePath)

	var token uint64
	_ = v.update("mount", func(s *State) error {
		token = v.gen.Advance()
		*s = State{CourseID: courseID, Loading: true}
		return nil
	})

	var (
		course *domain.Course
		err    error
	)
	if courseID != "" {
		course, err = v.api.GetCourse(ctx, courseID)
	}

	if applyErr := v.apply(token, "course:loaded", func(s *State) {
		s.Loading = false
		if err != nil || course == nil {
			s.NotFound = true
			return
		}
		c := cloneCourse(*course)
		if c.Videos == nil {
			c.Videos = []domain.Video{}
		}
		s.Course = &c
	}); applyErr != nil {
		return applyErr
	}

	switch {
	case err != nil:
		v.lg.Warn("course lookup failed", slog.String("course_id", courseID), slog.Any("error", err))
		if errors.Is(err, domain.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrCourseNotFound, err)
	case course == nil:
		return domain.ErrCourseNotFound
	}
	return nil
}

func (v *View) Unmount() {
	_ = v.update("unmount", func(s *State) error {
		v.gen.Advance()
		return nil
	})
}

func (v *View) OpenAddVideo() error {
	return v.update("dialog:open", func(s *State) error {
		if s.Course == nil {
			return domain.ErrCourseNotFound
		}
		s.Form.Open = true
		return nil
	})
}

// CloseAddVideo hides the dialog; typed values are kept for the next open.
func (v *View) CloseAddVideo() error {
	return v.update("dialog:close", func(s *State) error {
		if !s.Form.Open {
			return view.ErrClosed
		}
		s.Form.Open = false
		return nil
	})
}

func (v *View) SetTitle(title string) error {
	return v.update("form:title", func(s *State) error {
		if !s.Form.Open {
			return view.ErrClosed
		}
		s.Form.Title = title
		return nil
	})
}

func (v *View) SetDescription(description string) error {
	return v.update("form:description", func(s *State) error {
		if !s.Form.Open {
			return view.ErrClosed
		}
		s.Form.Description = description
		return nil
	})
}

// UploadComplete records the asset produced by the uploader. The duration
// stays at the placeholder until the backend computes it.
func (v *View) UploadComplete(assetID string) error {
	if assetID == "" {
		return domain.ErrMissingIdentifier
	}
	err := v.update("upload:complete", func(s *State) error {
		s.Form.Upload = &domain.Video{
			ID:       assetID,
			URL:      domain.PlaybackURL(v.playbackBaseURL, assetID),
			Duration: domain.PendingDuration,
		}
		return nil
	})
	if err != nil {
		return err
	}
	view.Success(v.notifier, msgUploaded)
	return nil
}

// SubmitVideo attaches the uploaded video to the course and appends it to
// the local video list once the backend accepts it.
func (v *View) SubmitVideo(ctx context.Context) error {
	var (
		courseID string
		video    domain.Video
		token    uint64
	)
	err := v.update("submit:start", func(s *State) error {
		if s.Course == nil {
			return domain.ErrCourseNotFound
		}
		if s.Submitting {
			return view.ErrBusy
		}
		if s.Form.Upload == nil || s.Form.Title == "" || s.Form.Upload.URL == "" {
			return domain.NewValidationError(MsgFillAllFields)
		}
		video = *s.Form.Upload
		video.Title = s.Form.Title
		video.Description = s.Form.Description
		courseID = s.CourseID
		token = v.gen.Token()
		s.Submitting = true
		return nil
	})
	if err != nil {
		if domain.IsValidation(err) {
			view.Error(v.notifier, err.Error())
		}
		return err
	}

	err = v.api.AddVideoToCourse(ctx, courseID, video)
	if err != nil {
		if applyErr := v.apply(token, "submit:failed", func(s *State) { s.Submitting = false }); applyErr != nil {
			return applyErr
		}
		v.lg.Error("error adding video to course",
			slog.String("course_id", courseID),
			slog.String("video_id", video.ID),
			slog.Any("error", err))
		view.Error(v.notifier, client.Message(err, msgAddFailed))
		return err
	}

	if err := v.apply(token, "submit:done", func(s *State) {
		course := cloneCourse(*s.Course)
		course.Videos = append(course.Videos, video)
		s.Course = &course
		s.Form = AddVideoForm{}
		s.Submitting = false
	}); err != nil {
		return err
	}

	view.Success(v.notifier, msgAdded)
	return nil
}
