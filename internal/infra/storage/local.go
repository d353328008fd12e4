package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images below a directory that the HTTP server exposes
// under publicBase. Meant for development and tests.
type LocalStore struct {
	dir        string
	publicBase string
}

func NewLocal(dir, publicBase string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage: directory is required")
	}
	if publicBase == "" {
		return nil, fmt.Errorf("local storage: public URL is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir is the root directory objects are written to.
func (l *LocalStore) Dir() string { return l.dir }

func (l *LocalStore) Upload(_ context.Context, key string, body []byte, _ string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, body, 0o644)
}

func (l *LocalStore) Remove(_ context.Context, key string) error {
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *LocalStore) PublicURL(key string) string {
	return l.publicBase + "/" + key
}

func (l *LocalStore) KeyFromURL(url string) (string, bool) {
	return keyUnder(l.publicBase, url)
}

func (l *LocalStore) path(key string) (string, error) {
	p := filepath.Join(l.dir, filepath.FromSlash(key))
	if !strings.HasPrefix(p, l.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes storage directory", key)
	}
	return p, nil
}
