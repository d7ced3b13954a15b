// Package fsx abstracts the binary object store used for uploaded files.
package fsx

import (
	"context"
	"io"
	"time"
)

// FileReader reads stored objects
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores and removes objects
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte, contentType string) error
	WriteFileStream(ctx context.Context, path string, r io.Reader, contentType string) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the full object store contract
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
	// SignedURL returns a time-limited retrieval URL for path
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
