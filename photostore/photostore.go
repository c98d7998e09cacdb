// Package photostore persists captured photos to S3 and hands back a
// stable public URL. The try-on generator probes that URL before
// invoking the model, so public readability is a hard precondition.
package photostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/styleshop/fitting-room/capture"
	appConfig "github.com/styleshop/fitting-room/config"
)

// ErrStorage reports an upload failure (storage unreachable, quota,
// invalid payload). Recoverable: the in-memory photo is retained and
// the upload can be retried without recapturing.
var ErrStorage = errors.New("photo storage failed")

// StoredPhotoRef is a durable, publicly fetchable reference to an
// uploaded photo.
type StoredPhotoRef struct {
	URL string `json:"publicUrl"`
	Key string `json:"key"`
}

// Uploader persists a captured photo and returns its public reference.
type Uploader interface {
	Upload(ctx context.Context, photo capture.CapturedPhoto) (StoredPhotoRef, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads photos to a public S3 bucket.
type S3Store struct {
	client objectPutter
	bucket string
	region string
}

// NewS3Store initializes the S3 client from the default credential
// chain and the configured region.
func NewS3Store(ctx context.Context) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: appConfig.AWSBucketName,
		region: appConfig.AWSRegion,
	}, nil
}

// Upload stores the photo under uploads/<token>-<timestamp>.<ext>.
// The token makes concurrent uploads from different sessions
// collision-free, and the conditional put refuses to overwrite an
// existing object: uploads are additive-only.
func (s *S3Store) Upload(ctx context.Context, photo capture.CapturedPhoto) (StoredPhotoRef, error) {
	if len(photo.Data) == 0 {
		return StoredPhotoRef{}, fmt.Errorf("%w: empty photo payload", ErrStorage)
	}

	key := ObjectKey(photo)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo.Data),
		ContentType: aws.String(photo.MIME),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return StoredPhotoRef{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return StoredPhotoRef{
		URL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key: key,
	}, nil
}

// ObjectKey builds the upload path: uploads/<random-token>-<timestamp>.<ext>.
func ObjectKey(photo capture.CapturedPhoto) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("uploads/%s-%d.%s", token, time.Now().UnixMilli(), photo.Ext())
}
