package storage

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Storage stores output files.
type Storage interface {
	// Put writes size bytes from r under a key derived from name and opts.
	Put(ctx context.Context, name string, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get opens a stored file. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// FileInfo describes a stored file.
type FileInfo struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Config selects and configures a backend. Bucket set means S3, otherwise
// files go to Dir.
type Config struct {
	Dir string `env:"STORAGE_DIR" envDefault:"./out"`

	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint is set for MinIO and other S3-compatible services.
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

// Open returns the backend described by cfg.
func Open(cfg Config) (Storage, error) {
	if cfg.Bucket != "" {
		return New(cfg)
	}
	return NewLocal(cfg.Dir)
}

var unsafeSegmentRe = regexp.MustCompile(`[^\p{L}\p{N}\-_.()\[\] ]`)

// sanitizeSegment keeps one path segment safe for both backends.
func sanitizeSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	return unsafeSegmentRe.ReplaceAllString(segment, "_")
}

// buildKey joins the sanitized prefix and file name. An empty prefix is
// replaced with a random UUID.
func buildKey(prefix, name string) (string, error) {
	name = sanitizeSegment(path.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." {
		return "", ErrInvalidKey
	}

	var parts []string
	for _, p := range strings.Split(prefix, "/") {
		if p = sanitizeSegment(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, uuid.NewString())
	}
	return strings.Join(append(parts, name), "/"), nil
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// contentTypes maps output extensions to MIME types.
var contentTypes = map[string]string{
	".txt":  "text/plain",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".md":   "text/markdown; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".json": "application/json",
}

// ContentType returns the MIME type for a file name, or
// application/octet-stream when the extension is unknown.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
