package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"quote3d/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrBucketNotConfigured = errors.New("s3 bucket not configured")

// PutObjectAPI is the part of *s3.Client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ PutObjectAPI = (*s3.Client)(nil)

type S3Storage struct {
	client PutObjectAPI
	bucket string
}

var _ interfaces.IObjectStorage = (*S3Storage)(nil)

func NewS3Storage(client PutObjectAPI, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

// PutObject uploads body under key and returns its s3://bucket/key path.
func (s *S3Storage) PutObject(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	if s.bucket == "" {
		return "", ErrBucketNotConfigured
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Printf("[storage][s3] put-object failed bucket=%s key=%s err=%v", s.bucket, key, err)
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
