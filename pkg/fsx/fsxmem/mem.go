// Package fsxmem is an in-memory fsx.FileSystem for local runs and tests.
package fsxmem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sync"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/fsx"
)

var ErrNotFound = errors.New("fsxmem: file not found")

type Object struct {
	Data        []byte
	ContentType string
}

type FileSystem struct {
	mu      sync.RWMutex
	objects map[string]Object
	// FailWrites makes every write return an error
	FailWrites bool
}

var _ fsx.FileSystem = (*FileSystem)(nil)

func New() *FileSystem {
	return &FileSystem{objects: make(map[string]Object)}
}

func (fs *FileSystem) Join(elem ...string) string { return path.Join(elem...) }

func (fs *FileSystem) ReadFile(_ context.Context, p string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	obj, ok := fs.objects[p]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), obj.Data...), nil
}

func (fs *FileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, err := fs.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (fs *FileSystem) WriteFile(_ context.Context, p string, data []byte, contentType string) error {
	if fs.FailWrites {
		return errors.New("fsxmem: write failed")
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.objects[p] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (fs *FileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return fs.WriteFile(ctx, p, data, contentType)
}

func (fs *FileSystem) DeleteFile(_ context.Context, p string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.objects[p]; !ok {
		return ErrNotFound
	}
	delete(fs.objects, p)
	return nil
}

func (fs *FileSystem) SignedURL(_ context.Context, p string, _ time.Duration) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if _, ok := fs.objects[p]; !ok {
		return "", ErrNotFound
	}
	return "mem://" + p, nil
}

// Get returns the stored object, for assertions
func (fs *FileSystem) Get(p string) (Object, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	obj, ok := fs.objects[p]
	return obj, ok
}
