package coursedetail

import (
	"slices"
	"strings"

	"github.com/ynastt/course-admin/internal/domain"
)

// AddVideoForm backs the "Add New Video" dialog. Upload is set once the
// uploader reports a finished asset.
type AddVideoForm struct {
	Open        bool
	Title       string
	Description string
	Upload      *domain.Video
}

type State struct {
	CourseID string
	Course   *domain.Course
	Loading  bool
	NotFound bool

	Form       AddVideoForm
	Submitting bool
}

// EmptyState reports whether the "add your first video" card is shown.
func (s State) EmptyState() bool {
	return s.Course != nil && len(s.Course.Videos) == 0
}

func (s State) SubmitLabel() string {
	if s.Submitting {
		return "Adding..."
	}
	return "Add Video"
}

func (s *State) clone() State {
	c := *s
	if s.Course != nil {
		course := cloneCourse(*s.Course)
		c.Course = &course
	}
	if s.Form.Upload != nil {
		upload := *s.Form.Upload
		c.Form.Upload = &upload
	}
	return c
}

func cloneCourse(c domain.Course) domain.Course {
	c.Tags = slices.Clone(c.Tags)
	c.Videos = slices.Clone(c.Videos)
	if c.Thumbnail != nil {
		t := *c.Thumbnail
		c.Thumbnail = &t
	}
	return c
}

// CourseIDFromPath extracts the course id from a route such as
// "/courses/<id>" or "/courses/<id>/<videoID>".
func CourseIDFromPath(routePath string) string {
	parts := strings.Split(routePath, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

type Overview struct {
	Name        string
	Description string
	Instructor  string
	Updated     string
	Tags        []string
	Thumbnail   string
	VideoCount  int
}

// NewOverview renders the course header. Courses without their own
// thumbnail show the default one.
func NewOverview(c *domain.Course) Overview {
	o := Overview{
		Name:        c.Name,
		Description: c.Description,
		Instructor:  c.Instructor.Name,
		Tags:        slices.Clone(c.Tags),
		Thumbnail:   domain.DefaultCourseThumbnail,
		VideoCount:  len(c.Videos),
	}
	if !c.UpdatedAt.IsZero() {
		o.Updated = c.UpdatedAt.Format("Jan 2, 2006")
	}
	if c.HasCustomThumbnail() {
		o.Thumbnail = *c.Thumbnail
	}
	return o
}

type VideoCard struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Route       string
}

func VideoCards(c *domain.Course) []VideoCard {
	cards := make([]VideoCard, 0, len(c.Videos))
	for _, v := range c.Videos {
		cards = append(cards, VideoCard{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   domain.VideoThumbnail,
			Route:       domain.VideoRoute(c.ID, v.ID),
		})
	}
	return cards
}
