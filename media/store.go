// Package media abstracts the content store for uploaded files. Records
// keep only the store key; replacing a file requires an explicit Delete of
// the old key, which the repository layer performs on save.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the minimal contract the repositories and handlers need from a
// content store.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
}

// Config is passed explicitly into store constructors. No store reads
// process-global settings.
type Config struct {
	// Driver selects the implementation: "s3" or "fs".
	Driver string

	// S3 settings.
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible stores
	AccessKey string
	SecretKey string
	PublicURL string // base URL served to clients

	// Filesystem settings.
	Root string
}

// PreviewKey builds a namespaced, collision-free store key for a project
// preview upload.
func PreviewKey(filename string) string {
	return fmt.Sprintf("projects/preview/%s_%s", uuid.New().String(), sanitizeFilename(filename))
}

func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return base
}
