package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrInvalidKey      = errors.New("invalid image key")
	ErrTooLarge        = errors.New("image too large")
)

// ImageStore keeps inventory photos
type ImageStore interface {
	// Save stores an image and returns the URL it is served from
	Save(ctx context.Context, name, contentType string, r io.Reader) (key, url string, err error)
	// Open returns the image content and its MIME type
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
