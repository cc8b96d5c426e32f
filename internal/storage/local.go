package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tent-ledger-backend/internal/logger"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalImageStore writes images under a directory on disk and serves them
// back through the REST API
type LocalImageStore struct {
	baseURL string // e.g. "http://localhost:8080"
	dir     string
	maxSize int64
}

func NewLocalImageStore(baseURL, dir string, maxSizeMB int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &LocalImageStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
		maxSize: maxSizeMB << 20,
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	key := uuid.NewString() + ext
	path := filepath.Join(s.dir, key)

	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}
	if n > s.maxSize {
		os.Remove(path)
		return "", "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxSize)
	}

	logger.Debug("Image stored", "key", key, "name", name, "bytes", n)
	return key, fmt.Sprintf("%s/api/v1/images/%s", s.baseURL, key), nil
}

func (s *LocalImageStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return nil, "", ErrInvalidKey
	}

	contentType := "application/octet-stream"
	for ct, ext := range extensions {
		if strings.HasSuffix(key, ext) {
			contentType = ct
			break
		}
	}

	file, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return file, contentType, nil
}
