package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/naruebet/teachshare/pkg/ports"
)

// Storage keeps uploaded files in an S3-compatible bucket. Works with MinIO,
// AWS S3 or any other provider speaking the S3 API.
type Storage struct {
	client *minio.Client
	bucket string
}

func NewStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
	}

	return &Storage{client: client, bucket: bucket}, nil
}

func (s *Storage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}

	// GetObject is lazy; Stat forces the first round trip so a missing object
	// fails here instead of mid-stream.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, "", err
	}

	return obj, stat.ContentType, nil
}

func (s *Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, url.PathEscape(key))
}

// KeyFor extracts the object key from a public URL. It reports false for URLs
// that do not point at the configured bucket, so delete paths never reach
// objects this service does not own. Both path-style (host/bucket/key) and
// virtual-host-style (bucket.host/key) URLs are accepted.
func (s *Storage) KeyFor(fileURL string) (string, bool) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", false
	}

	path := strings.TrimPrefix(u.Path, "/")

	if strings.HasPrefix(u.Hostname(), s.bucket+".") {
		key, err := url.PathUnescape(path)
		if err != nil {
			return "", false
		}
		return key, key != ""
	}

	if rest, ok := strings.CutPrefix(path, s.bucket+"/"); ok {
		key, err := url.PathUnescape(rest)
		if err != nil {
			return "", false
		}
		return key, key != ""
	}

	return "", false
}

var _ ports.ObjectStorage = (*Storage)(nil)
