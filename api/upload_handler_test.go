package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshop/fitting-room/capture"
	"github.com/styleshop/fitting-room/photostore"
)

type fakeUploader struct {
	ref photostore.StoredPhotoRef
	err error
	got capture.CapturedPhoto
}

func (f *fakeUploader) Upload(_ context.Context, photo capture.CapturedPhoto) (photostore.StoredPhotoRef, error) {
	f.got = photo
	if f.err != nil {
		return photostore.StoredPhotoRef{}, f.err
	}
	return f.ref, nil
}

func multipartPhotoRequest(t *testing.T, field string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "me.jpg")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandlerSuccess(t *testing.T) {
	uploader := &fakeUploader{ref: photostore.StoredPhotoRef{
		URL: "https://user-photos.s3.eu-west-1.amazonaws.com/uploads/abc-1.jpg",
		Key: "uploads/abc-1.jpg",
	}}
	s := &Server{Uploader: uploader}

	w := httptest.NewRecorder()
	s.UploadHandler(w, multipartPhotoRequest(t, "photo", []byte{0xFF, 0xD8, 0xFF, 0xE0}))

	require.Equal(t, http.StatusOK, w.Code)
	var ref photostore.StoredPhotoRef
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ref))
	assert.Equal(t, uploader.ref.URL, ref.URL)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0}, uploader.got.Data)
}

func TestUploadHandlerRequiresPhotoField(t *testing.T) {
	s := &Server{Uploader: &fakeUploader{}}

	w := httptest.NewRecorder()
	s.UploadHandler(w, multipartPhotoRequest(t, "avatar", []byte{1, 2, 3}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "photo")
}

func TestUploadHandlerRejectsEmptyFile(t *testing.T) {
	s := &Server{Uploader: &fakeUploader{}}

	w := httptest.NewRecorder()
	s.UploadHandler(w, multipartPhotoRequest(t, "photo", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandlerStorageFailure(t *testing.T) {
	s := &Server{Uploader: &fakeUploader{err: errors.New("bucket unavailable")}}

	w := httptest.NewRecorder()
	s.UploadHandler(w, multipartPhotoRequest(t, "photo", []byte{1, 2, 3}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUploadHandlerRejectsNonPost(t *testing.T) {
	s := &Server{Uploader: &fakeUploader{}}

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	w := httptest.NewRecorder()
	s.UploadHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
