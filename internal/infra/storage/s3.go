package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore uploads normalized menu and staff pictures to S3.
type ImageStore struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

func NewS3ImageStore(cfg config.StorageConfig) (*ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ImageStore{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// UploadImage stores r under prefix and returns its public URL.
func (s *ImageStore) UploadImage(ctx context.Context, prefix string, r io.Reader) (string, error) {
	data, err := NormalizeImage(r, MaxImageSide)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", strings.Trim(prefix, "/"), uuid.NewString())
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(webpContentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
