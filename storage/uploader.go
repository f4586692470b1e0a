package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by the disabled uploader when the blob store
// credentials are missing.
var ErrNotConfigured = errors.New("blob storage is not configured")

type UploadResult struct {
	Key      string
	Location string
}

// FileUploader abstracts the backend's blob store. Registration attachments
// and profile avatars go through it.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// disabledUploader stands in when no blob store is configured; every upload
// fails with ErrNotConfigured so the caller surfaces an inline message.
type disabledUploader struct{}

func NewDisabledUploader() FileUploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, string, string, io.Reader) (*UploadResult, error) {
	return nil, ErrNotConfigured
}

func (disabledUploader) Delete(context.Context, string) error {
	return ErrNotConfigured
}

func (disabledUploader) GetPublicURL(string) string {
	return ""
}
