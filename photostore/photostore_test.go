package photostore

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshop/fitting-room/capture"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func testStore(putter *fakePutter) *S3Store {
	return &S3Store{client: putter, bucket: "user-photos", region: "eu-west-1"}
}

func TestUploadBuildsCollisionResistantKey(t *testing.T) {
	putter := &fakePutter{}
	store := testStore(putter)

	ref, err := store.Upload(context.Background(), capture.CapturedPhoto{Data: []byte{1}, MIME: "image/jpeg"})
	require.NoError(t, err)

	keyPattern := regexp.MustCompile(`^uploads/[0-9a-f]{32}-\d+\.jpg$`)
	assert.Regexp(t, keyPattern, ref.Key)
	assert.Equal(t, "https://user-photos.s3.eu-west-1.amazonaws.com/"+ref.Key, ref.URL)
}

func TestUploadKeysNeverCollide(t *testing.T) {
	putter := &fakePutter{}
	store := testStore(putter)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := store.Upload(context.Background(), capture.CapturedPhoto{Data: []byte{1}, MIME: "image/png"})
		require.NoError(t, err)
		assert.False(t, seen[ref.Key], "duplicate key %s", ref.Key)
		seen[ref.Key] = true
	}
}

func TestUploadIsAdditiveOnly(t *testing.T) {
	putter := &fakePutter{}
	store := testStore(putter)

	_, err := store.Upload(context.Background(), capture.CapturedPhoto{Data: []byte{1}, MIME: "image/jpeg"})
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	input := putter.inputs[0]
	require.NotNil(t, input.IfNoneMatch, "puts must refuse to overwrite existing objects")
	assert.Equal(t, "*", *input.IfNoneMatch)
	assert.Equal(t, "image/jpeg", *input.ContentType)

	body, err := io.ReadAll(input.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, body)
}

func TestUploadEmptyPayloadFails(t *testing.T) {
	store := testStore(&fakePutter{})

	_, err := store.Upload(context.Background(), capture.CapturedPhoto{})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestUploadPutFailureIsStorageError(t *testing.T) {
	store := testStore(&fakePutter{err: errors.New("bucket unreachable")})

	_, err := store.Upload(context.Background(), capture.CapturedPhoto{Data: []byte{1}, MIME: "image/jpeg"})
	require.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "bucket unreachable")
}
