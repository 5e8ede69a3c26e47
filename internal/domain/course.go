package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCourseThumbnail = "/courseThumbnail.jpg"
	VideoThumbnail         = "/videoThumbnail.jpg"

	// PendingDuration is stored until the media length is known.
	PendingDuration = "0"
)

type Course struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Instructor  Instructor `json:"instructor"`
	Thumbnail   *string    `json:"thumbnail"`
	Tags        []string   `json:"tags"`
	Videos      []Video    `json:"videos"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Instructor struct {
	Name string `json:"name"`
}

type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
}

type CreateCourseRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Instructor  Instructor `json:"instructor"`
	Thumbnail   *string    `json:"thumbnail"`
	Tags        []string   `json:"tags"`
}

type AddVideoResponse struct {
	Video Video `json:"video"`
}

func (r *CreateCourseRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("Course must have a name")
	}
	if strings.TrimSpace(r.Instructor.Name) == "" {
		return NewValidationError("Course must have an instructor")
	}
	return nil
}

func (v *Video) Validate() error {
	if v.ID == "" || v.URL == "" || v.Title == "" {
		return NewValidationError("Video must have an id, url and title")
	}
	return nil
}

// HasCustomThumbnail reports whether the course carries its own thumbnail
// rather than the default placeholder.
func (c *Course) HasCustomThumbnail() bool {
	return c.Thumbnail != nil && *c.Thumbnail != "" && *c.Thumbnail != DefaultCourseThumbnail
}

// PlaybackURL derives the HLS playlist location of an uploaded asset.
func PlaybackURL(baseURL, assetID string) string {
	return fmt.Sprintf("%s/hls/%s/%s.m3u8", strings.TrimRight(baseURL, "/"), assetID, assetID)
}

func VideoRoute(courseID, videoID string) string {
	return fmt.Sprintf("/courses/%s/%s", courseID, videoID)
}
