package repository

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/types"
)

// S3Storage keeps every collection as one object <prefix>/<key>.json
type S3Storage struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Storage(client *s3.Client, bucket, prefix string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Storage) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

func (s *S3Storage) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, s.mapError(err, key)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return s.mapError(err, key)
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		mapped := s.mapError(err, key)
		if errors.Is(mapped, types.ErrNotFound) {
			return nil
		}
		return mapped
	}
	return nil
}

func (s *S3Storage) Name() string {
	return StorageS3
}

func (s *S3Storage) mapError(err error, key string) error {
	var noKey *s3Types.NoSuchKey
	var apiErr smithy.APIError
	if errors.As(err, &noKey) {
		return types.ErrNotFound
	} else if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return types.ErrNotFound
		case "AccessDenied":
			level.Warn(global.Logger).Log("msg", "access denied", "objectKey", s.objectKey(key))
		}
	}
	return err
}
