package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/pkg/queue"
)

type ObjectStore interface {
	PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, key string) error
}

type JobPublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type UploadService struct {
	store       ObjectStore
	publisher   JobPublisher
	playbackURL string
	lg          *slog.Logger
}

func NewUploadService(store ObjectStore, publisher JobPublisher, playbackURL string, lg *slog.Logger) *UploadService {
	return &UploadService{
		store:       store,
		publisher:   publisher,
		playbackURL: playbackURL,
		lg:          lg,
	}
}

// UploadVideo stores the raw file under a fresh asset id and queues it for
// transcoding. The returned URL becomes playable once the job completes.
func (s *UploadService) UploadVideo(ctx context.Context, filename string, size int64, r io.Reader) (*domain.UploadResult, error) {
	if !domain.IsVideoFile(filename) {
		return nil, domain.ErrUnsupportedMedia
	}

	assetID := uuid.NewString()
	key := domain.RawVideoKey(assetID, filename)
	log := s.lg.With(slog.String("asset_id", assetID), slog.String("key", key))

	if err := s.store.PutObject(ctx, key, r, size, domain.VideoContentType(filename)); err != nil {
		log.Error("failed to store raw video", slog.Any("error", err))
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	body, err := json.Marshal(domain.NewTranscodeJob(assetID, key))
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcode job: %w", err)
	}

	if err := s.publisher.Publish(ctx, queue.TranscodeQueue, body); err != nil {
		log.Error("failed to queue transcode job", slog.Any("error", err))
		if rmErr := s.store.RemoveObject(ctx, key); rmErr != nil {
			log.Warn("failed to remove orphaned raw video", slog.Any("error", rmErr))
		}
		return nil, fmt.Errorf("failed to queue transcoding: %w", err)
	}

	log.Info("video uploaded", slog.Int64("size", size))
	return &domain.UploadResult{
		AssetID: assetID,
		URL:     domain.PlaybackURL(s.playbackURL, assetID),
	}, nil
}
