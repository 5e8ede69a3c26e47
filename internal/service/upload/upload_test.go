package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/queue"
)

type fakeStore struct {
	objects     map[string]string
	contentType map[string]string
	putErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}, contentType: map[string]string{}}
}

func (s *fakeStore) PutObject(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = string(b)
	s.contentType[key] = contentType
	return nil
}

func (s *fakeStore) RemoveObject(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type published struct {
	queue string
	body  []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, q string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{queue: q, body: body})
	return nil
}

func newService(store ObjectStore, pub JobPublisher) *UploadService {
	return NewUploadService(store, pub, "https://cdn.example.com", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUploadVideo(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}

	res, err := newService(store, pub).UploadVideo(context.Background(), "Lecture 1.MP4", 5, strings.NewReader("bytes"))
	if err != nil {
		t.Fatal(err)
	}

	key := "raw/" + res.AssetID + ".mp4"
	if store.objects[key] != "bytes" {
		t.Errorf("objects = %v, want %s", store.objects, key)
	}
	if store.contentType[key] != "video/mp4" {
		t.Errorf("content type = %q", store.contentType[key])
	}
	if res.URL != "https://cdn.example.com/hls/"+res.AssetID+"/"+res.AssetID+".m3u8" {
		t.Errorf("URL = %q", res.URL)
	}

	if len(pub.msgs) != 1 || pub.msgs[0].queue != queue.TranscodeQueue {
		t.Fatalf("published = %+v", pub.msgs)
	}
	var job domain.TranscodeJob
	if err := json.Unmarshal(pub.msgs[0].body, &job); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(domain.NewTranscodeJob(res.AssetID, key), job); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadVideoRejectsNonVideo(t *testing.T) {
	store := newFakeStore()
	_, err := newService(store, &fakePublisher{}).UploadVideo(context.Background(), "notes.pdf", 1, strings.NewReader("x"))
	if !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Errorf("error = %v, want ErrUnsupportedMedia", err)
	}
	if len(store.objects) != 0 {
		t.Error("non-video stored")
	}
}

func TestUploadVideoRemovesObjectWhenQueueFails(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("channel closed")}

	if _, err := newService(store, pub).UploadVideo(context.Background(), "a.webm", 1, strings.NewReader("x")); err == nil {
		t.Fatal("error = nil, want publish failure")
	}
	if len(store.objects) != 0 {
		t.Errorf("orphaned objects left behind: %v", store.objects)
	}
}

func TestUploadVideoStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("bucket unavailable")
	pub := &fakePublisher{}

	if _, err := newService(store, pub).UploadVideo(context.Background(), "a.mov", 1, strings.NewReader("x")); err == nil {
		t.Fatal("error = nil, want store failure")
	}
	if len(pub.msgs) != 0 {
		t.Error("job published for a failed upload")
	}
}
