package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ynastt/course-admin/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: domain.ErrorDetail{Code: code, Message: message}})
}

func TestCreateCustomFieldSendsEnvelope(t *testing.T) {
	var got domain.SaveCustomFieldRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/custom-fields" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		saved := got.Field
		saved.ID = "f1"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(saved)
	})

	field := domain.CustomField{Name: "bio", Label: "Bio", Type: domain.FieldTypeText, IsActive: true, Teams: []string{"t1"}}
	saved, err := c.CreateCustomField(context.Background(), field)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(field, got.Field); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
	if saved.ID != "f1" {
		t.Errorf("saved id = %q", saved.ID)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", domain.MsgTeamRequired)
	})

	_, err := c.UpdateCustomField(context.Background(), "f1", domain.CustomField{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	want := &APIError{Status: http.StatusBadRequest, Code: "INVALID_INPUT", Message: domain.MsgTeamRequired}
	if diff := cmp.Diff(want, apiErr); diff != "" {
		t.Errorf("APIError mismatch (-want +got):\n%s", diff)
	}
	if got := Message(err, "fallback"); got != domain.MsgTeamRequired {
		t.Errorf("Message() = %q", got)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteCustomField(context.Background(), "f1")
	if err == nil || err.Error() != "request failed with status 502" {
		t.Errorf("error = %v", err)
	}
}

func TestGetCourseNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "course not found")
	})

	if _, err := c.GetCourse(context.Background(), "c1"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("error = %v, want ErrCourseNotFound", err)
	}
}

func TestTransportErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	err := c.AddVideoToCourse(context.Background(), "c1", domain.Video{ID: "a1"})
	if err == nil {
		t.Fatal("error = nil for a closed server")
	}
	if got := Message(err, "Error adding video to course."); got != "Error adding video to course." {
		t.Errorf("Message() = %q", got)
	}
}

func TestUploadVideoSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "intro.mp4" || string(body) != "bytes" {
			t.Errorf("upload = %s %q", header.Filename, body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.UploadResult{AssetID: "a1", URL: "https://cdn/hls/a1/a1.m3u8"})
	})

	res, err := c.UploadVideo(context.Background(), "intro.mp4", strings.NewReader("bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if res.AssetID != "a1" {
		t.Errorf("result = %+v", res)
	}
}
