package attachments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/ports"
	"workshop/internal/pkg/datauri"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var _ ports.AttachmentStore = (*GCSStore)(nil)

// GCSStore keeps attachments in a Cloud Storage bucket and hands out public
// object URLs.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore uses credentialsJSON when given and Application Default
// Credentials otherwise. It fails when the bucket is not accessible.
func NewGCSStore(ctx context.Context, bucket, credentialsJSON string) (*GCSStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if _, err = client.Bucket(bucket).Attrs(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gcs bucket %q not accessible: %w", bucket, err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Store(ctx context.Context, payload string, category ports.AttachmentCategory) (string, error) {
	if datauri.IsReference(payload) {
		return strings.TrimSpace(payload), nil
	}

	data, err := decode(payload)
	if err != nil {
		return "", err
	}

	key := objectKey(category, data)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = data.MediaType

	if _, err = w.Write(data.Bytes); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", key, err)
	}

	logger.Debugw(ctx, "attachment uploaded", "bucket", s.bucket, "key", key, "bytes", len(data.Bytes))
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

// Usage lists every object in the bucket.
func (s *GCSStore) Usage(ctx context.Context) (ports.StorageUsage, error) {
	var usage ports.StorageUsage
	it := s.client.Bucket(s.bucket).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return ports.StorageUsage{}, fmt.Errorf("list objects: %w", err)
		}
		usage.Bytes += attrs.Size
		usage.Objects++
	}
	return usage, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
