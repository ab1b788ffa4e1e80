package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MinioBlobStore stores NC photos in a minio bucket and serves them
// through public download URLs.
type MinioBlobStore struct {
	client    *minio.Client
	publicURL string
	log       *zap.Logger
}

func NewMinioBlobStore(client *minio.Client, publicURL string, log *zap.Logger) *MinioBlobStore {
	return &MinioBlobStore{client: client, publicURL: publicURL, log: log}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinioBlobStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	s.log.Info("created bucket", zap.String("bucket", bucket))
	return nil
}

func (s *MinioBlobStore) Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return nil
}

func (s *MinioBlobStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, path)
}
