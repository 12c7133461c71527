package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores files under a directory on disk.
type Local struct {
	root string
}

// NewLocal creates the directory if needed and returns a Local backend.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidConfig)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return &Local{root: root}, nil
}

// Root returns the absolute storage directory.
func (l *Local) Root() string { return l.root }

func (l *Local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Put writes the file through a temporary file and renames it into place.
func (l *Local) Put(ctx context.Context, name string, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, contentType, err := resolve(name, opts)
	if err != nil {
		return nil, err
	}

	dst := l.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}
	if size >= 0 && written != size {
		return nil, fmt.Errorf("%w: wrote %d of %d bytes", ErrUploadFailed, written, size)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, errors.Join(ErrUploadFailed, err)
	}

	return &FileInfo{Key: key, ContentType: contentType, Size: written}, nil
}

func (l *Local) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}
	f, err := os.Open(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, errors.Join(ErrAccessDenied, err)
	}
	return f, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

// Ping checks that the root is still a writable directory.
func (l *Local) Ping(_ context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnavailable, l.root)
	}
	f, err := os.CreateTemp(l.root, ".ping-*")
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	f.Close()
	return os.Remove(f.Name())
}

var _ Storage = (*Local)(nil)
