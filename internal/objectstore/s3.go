package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/seantiz/directory/internal/cloud"
)

// Compile-time interface satisfaction check.
var _ Store = (*S3Store)(nil)

// S3Store implements Store on one S3 bucket.
type S3Store struct {
	bucket    string
	uploader  *manager.Uploader
	presigner *s3.PresignClient
	logger    *slog.Logger
}

// NewS3Client builds an S3 client from the shared AWS config.
func NewS3Client(awsCfg aws.Config, opts cloud.Options, pathStyle bool) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := opts.BaseEndpoint(); ep != nil {
			o.BaseEndpoint = ep
		}
		if pathStyle {
			o.UsePathStyle = true
		}
	})
}

// NewS3Store wraps client for bucket.
func NewS3Store(client *s3.Client, bucket string, logger *slog.Logger) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name cannot be empty")
	}
	return &S3Store{
		bucket:    bucket,
		uploader:  manager.NewUploader(client),
		presigner: s3.NewPresignClient(client),
		logger:    logger.With("component", "s3-store", "bucket", bucket),
	}, nil
}

// Upload streams body to key. Bodies larger than one part go up as a
// multipart upload.
func (s *S3Store) Upload(ctx context.Context, key string, body io.Reader) error {
	start := time.Now()
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentTypeForKey(key)),
	})
	if err != nil {
		return s.translateError(err, "Upload", key)
	}

	s.logger.Debug("object uploaded", "key", key, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// PresignGet returns a GET URL for key valid for ttl. A non-positive ttl
// means DefaultURLExpiry.
func (s *S3Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultURLExpiry
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *S3Store) translateError(err error, operation, key string) error {
	switch {
	case isErrorType[*s3types.NoSuchKey](err):
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	case isErrorType[*s3types.NoSuchBucket](err), apiErrorCode(err) == "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrBucketNotFound, s.bucket)
	default:
		return fmt.Errorf("%s failed for %s: %w", operation, key, err)
	}
}

// isErrorType checks if an error is of a specific type.
func isErrorType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// apiErrorCode returns the service error code, or "" for non-API errors.
// PutObject reports a missing bucket as a generic API error, not a typed one.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
