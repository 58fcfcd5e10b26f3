package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvoronin/portfolio-backend/errs"
)

// FSStore stores files under a local root directory. Used for development
// and tests; the production store is S3Store.
type FSStore struct {
	root   string
	public string
}

func NewFSStore(cfg Config) (*FSStore, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, errs.NewStorageError("create root for", cfg.Root, err)
	}
	return &FSStore{
		root:   cfg.Root,
		public: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FSStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.NewStorageError("store", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.NewStorageError("store", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return errs.NewStorageError("store", key, err)
	}
	return nil
}

func (s *FSStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errs.NewStorageError("delete", key, err)
	}
	return nil
}

func (s *FSStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.NewStorageError("stat", key, err)
	}
	return true, nil
}

func (s *FSStore) URL(key string) string {
	if s.public == "" {
		return key
	}
	return s.public + "/" + key
}
