package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/tasksystem/core/internal/infrastructure/config"
	"github.com/tasksystem/core/internal/ports"
)

// GCSFileStore stores attachments as objects in a Google Cloud Storage
// bucket. Object names are prefixed with a random id so two uploads of the
// same filename never collide.
type GCSFileStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSFileStore creates a file store backed by the configured bucket.
func NewGCSFileStore(ctx context.Context, cfg config.StorageConfig) (*GCSFileStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSFileStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload streams the reader into a new object and returns its name.
func (s *GCSFileStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	objectID := uuid.NewString() + "/" + filename

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectID).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload object %s: %w", objectID, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload object %s: %w", objectID, err)
	}

	return objectID, nil
}

// Download opens the stored object for reading. The caller closes it.
func (s *GCSFileStore) Download(ctx context.Context, objectID string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(objectID).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("download object %s: %w", objectID, err)
	}
	return r, nil
}

// Close releases the underlying client.
func (s *GCSFileStore) Close() error {
	return s.client.Close()
}

var _ ports.FileStore = (*GCSFileStore)(nil)
