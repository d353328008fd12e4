// Package storage talks to the object store that holds uploaded page images
// and implements the upload / delete helpers the content engine relies on.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverS3    = "s3"
	DriverLocal = "local"
)

// ObjectStore is a bucket-addressed bytes store. Upload overwrites an
// existing object with the same key; Remove of a missing key is not an error.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
	// KeyFromURL returns the object key when url points into this bucket.
	KeyFromURL(url string) (string, bool)
}

type Config struct {
	Driver    string
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	PathStyle bool
	LocalDir  string
}

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open builds the ObjectStore selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (ObjectStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverS3:
		return NewS3(ctx, cfg)
	case DriverLocal, "":
		return NewLocal(cfg.LocalDir, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// keyUnder strips base + "/" from rawURL.
func keyUnder(base, rawURL string) (string, bool) {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return "", false
	}
	rawURL = strings.TrimSpace(rawURL)
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	key, ok := strings.CutPrefix(rawURL, base+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
