package source

import (
	"context"
	"fmt"
	"io"

	"panelbom_backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOSource reads the catalog document from S3-compatible object storage.
// This is the production source: the ingestion collaborator uploads a new
// object version and the refresh signal picks it up.
type MinIOSource struct {
	client *minio.Client
	bucket string
	key    string
}

// NewMinIOSource creates an object-storage catalog source.
func NewMinIOSource(cfg config.MinIOConfig, bucket, key string) (*MinIOSource, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	return &MinIOSource{client: client, bucket: bucket, key: key}, nil
}

// Fetch downloads the catalog object.
func (s *MinIOSource) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get catalog object %s/%s: %w", s.bucket, s.key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read catalog object %s/%s: %w", s.bucket, s.key, err)
	}
	return data, nil
}

// Describe identifies the source for logs and errors.
func (s *MinIOSource) Describe() string {
	return fmt.Sprintf("s3:%s/%s", s.bucket, s.key)
}

var _ Source = (*MinIOSource)(nil)
