package medium

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

// DefaultS3Timeout bounds each S3 request.
const DefaultS3Timeout = 30 * time.Second

// S3Client abstracts the S3 API operations used by [S3].
// The [s3.Client] type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3 stores each record as one object. Locations are object keys. A single
// PutObject is atomic: GetObject returns the previous or the new object in
// full.
type S3 struct {
	client      S3Client
	bucket      string
	prefix      string
	contentType string
	timeout     time.Duration
}

// NewS3 creates an S3-backed medium. prefix bounds List; contentType is set
// on every stored object.
func NewS3(client S3Client, bucket, prefix, contentType string, timeout time.Duration) *S3 {
	if timeout <= 0 {
		timeout = DefaultS3Timeout
	}
	return &S3{client: client, bucket: bucket, prefix: prefix, contentType: contentType, timeout: timeout}
}

func (s *S3) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *S3) Exists(location string) (bool, error) {
	ctx, cancel := s.requestContext()
	defer cancel()

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		if isS3NotFound(err) {
			return false, nil
		}
		return false, apperrors.WrapStorage(err, "s3 head "+location)
	}
	return true, nil
}

func (s *S3) Read(location string) ([]byte, error) {
	ctx, cancel := s.requestContext()
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, apperrors.WrapNotFound(err, "s3 get "+location)
		}
		return nil, apperrors.WrapStorage(err, "s3 get "+location)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "s3 read body "+location)
	}
	return data, nil
}

func (s *S3) Replace(location string, data []byte) error {
	ctx, cancel := s.requestContext()
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(location),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if s.contentType != "" {
		input.ContentType = aws.String(s.contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return apperrors.WrapStorage(err, "s3 put "+location)
	}
	return nil
}

// Remove deletes the object. S3 DeleteObject already succeeds for missing
// keys; a NotFound from an S3-compatible server is treated the same way.
func (s *S3) Remove(location string) error {
	ctx, cancel := s.requestContext()
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil && !isS3NotFound(err) {
		return apperrors.WrapStorage(err, "s3 delete "+location)
	}
	return nil
}

func (s *S3) List() ([]string, error) {
	ctx, cancel := s.requestContext()
	defer cancel()

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var locations []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.WrapStorage(err, fmt.Sprintf("s3 list %s/%s", s.bucket, s.prefix))
		}
		for _, obj := range page.Contents {
			locations = append(locations, aws.ToString(obj.Key))
		}
	}
	sort.Strings(locations)
	return locations, nil
}

// isS3NotFound reports whether err indicates the S3 object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

var (
	_ Medium = (*S3)(nil)
	_ Lister = (*S3)(nil)
)
