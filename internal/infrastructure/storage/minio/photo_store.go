package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	miniosdk "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for the S3-compatible photo bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PhotoStore uploads questionnaire photos to a single bucket.
type PhotoStore struct {
	client *miniosdk.Client
	bucket string
}

// Connect builds the client and creates the bucket when it does not exist yet.
func Connect(ctx context.Context, cfg Config) (*PhotoStore, error) {
	client, err := miniosdk.New(cfg.Endpoint, &miniosdk.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, miniosdk.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &PhotoStore{client: client, bucket: cfg.Bucket}, nil
}

// Put stores the photo under key and returns the key as the photo reference.
func (s *PhotoStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, miniosdk.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put photo: %w", err)
	}
	return key, nil
}

// Delete removes the object stored under key.
func (s *PhotoStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, key, miniosdk.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (s *PhotoStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q missing", s.bucket)
	}
	return nil
}
