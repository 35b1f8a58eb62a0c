package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_PutObject(t *testing.T) {
	t.Run("uploads and returns the s3 path", func(t *testing.T) {
		client := &fakeS3{}
		s := NewS3Storage(client, "cad-uploads")

		path, err := s.PutObject(context.Background(), "uploads/abc/part.step", "model/step", 4, strings.NewReader("step"))
		require.NoError(t, err)
		assert.Equal(t, "s3://cad-uploads/uploads/abc/part.step", path)
		assert.Equal(t, "cad-uploads", aws.ToString(client.input.Bucket))
		assert.Equal(t, "uploads/abc/part.step", aws.ToString(client.input.Key))
		assert.Equal(t, "model/step", aws.ToString(client.input.ContentType))
		assert.Equal(t, int64(4), aws.ToInt64(client.input.ContentLength))
		assert.Equal(t, "step", client.body)
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		s := NewS3Storage(&fakeS3{err: boom}, "cad-uploads")

		_, err := s.PutObject(context.Background(), "k", "model/step", 1, strings.NewReader("x"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing bucket", func(t *testing.T) {
		client := &fakeS3{}
		s := NewS3Storage(client, "")

		_, err := s.PutObject(context.Background(), "k", "model/step", 1, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrBucketNotConfigured)
		assert.Nil(t, client.input)
	})
}
