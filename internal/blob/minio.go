// Package blob stores resume bytes in an S3-compatible bucket under their
// content address: <prefix>/<sha256>.pdf. Identical bytes always land on the
// identical key, which makes uploads idempotent and the key itself a dedup
// signal.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	UseSSL        bool
}

type Store struct {
	client     *minio.Client
	bucket     string
	prefix     string
	publicBase string
}

func NewStore(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}
	return &Store{
		client:     client,
		bucket:     cfg.Bucket,
		prefix:     strings.Trim(cfg.Prefix, "/"),
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Called once at
// startup.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

// Put uploads the resume bytes under their content address. An object already
// present at the key is a success no-op: by content addressing it is
// byte-identical to what would have been written. Any other storage failure
// is returned as-is and fails the attempt.
func (s *Store) Put(ctx context.Context, address string, data []byte) error {
	key := s.objectKey(address)

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code != "NoSuchKey" && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("stat resume object %q: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("upload resume object %q: %w", key, err)
	}
	return nil
}

// PublicURL returns the stable public URL for a content address. Two uploads
// of the same bytes always share one URL.
func (s *Store) PublicURL(address string) string {
	return s.publicBase + "/" + s.objectKey(address)
}

func (s *Store) objectKey(address string) string {
	return path.Join(s.prefix, address+".pdf")
}
