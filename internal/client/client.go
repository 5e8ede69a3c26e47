// Package client talks to the course admin HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ynastt/course-admin/internal/domain"
)

// APIError is a non-2xx response. Message is the server-provided text when
// the body carried one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Message extracts the text to show for err: the server message for API
// errors, fallback for anything else.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetError(&domain.ErrorResponse{})
	return &Client{http: r}
}

// NewWithHTTPClient reuses hc for transport, mainly for tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	r := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetError(&domain.ErrorResponse{})
	return &Client{http: r}
}

func (c *Client) ListCustomFields(ctx context.Context) ([]domain.CustomField, error) {
	var fields []domain.CustomField
	resp, err := c.http.R().SetContext(ctx).SetResult(&fields).Get("/api/admin/custom-fields")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return fields, nil
}

func (c *Client) CreateCustomField(ctx context.Context, field domain.CustomField) (*domain.CustomField, error) {
	var saved domain.CustomField
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(domain.SaveCustomFieldRequest{Field: field}).
		SetResult(&saved).
		Post("/api/admin/custom-fields")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) UpdateCustomField(ctx context.Context, id string, field domain.CustomField) (*domain.CustomField, error) {
	var saved domain.CustomField
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(domain.SaveCustomFieldRequest{Field: field}).
		SetResult(&saved).
		Patch("/api/admin/custom-fields/" + url.PathEscape(id))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteCustomField(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/admin/custom-fields/" + url.PathEscape(id))
	return check(resp, err)
}

func (c *Client) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	resp, err := c.http.R().SetContext(ctx).SetResult(&teams).Get("/api/teams")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) CreateTeam(ctx context.Context, team domain.Team) (*domain.Team, error) {
	var created domain.Team
	resp, err := c.http.R().SetContext(ctx).SetBody(team).SetResult(&created).Post("/api/teams")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCourse returns domain.ErrCourseNotFound when the API answers 404.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	var course domain.Course
	resp, err := c.http.R().SetContext(ctx).SetResult(&course).Get("/api/courses/" + url.PathEscape(courseID))
	if err := check(resp, err); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrCourseNotFound, courseID)
		}
		return nil, err
	}
	return &course, nil
}

func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	resp, err := c.http.R().SetContext(ctx).SetResult(&courses).Get("/api/courses")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) CreateCourse(ctx context.Context, req domain.CreateCourseRequest) (*domain.Course, error) {
	var course domain.Course
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&course).Post("/api/courses")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) AddVideoToCourse(ctx context.Context, courseID string, video domain.Video) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(video).
		SetResult(&domain.AddVideoResponse{}).
		Post("/api/courses/" + url.PathEscape(courseID) + "/videos")
	return check(resp, err)
}

func (c *Client) UploadVideo(ctx context.Context, filename string, r io.Reader) (*domain.UploadResult, error) {
	var result domain.UploadResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		SetResult(&result).
		Post("/api/uploads/videos")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	resp, err := c.http.R().SetContext(ctx).SetBody(product).SetResult(&created).Post("/api/products")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &created, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*domain.ErrorResponse); ok && body != nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = "request failed with status " + strconv.Itoa(resp.StatusCode())
	}
	return apiErr
}
