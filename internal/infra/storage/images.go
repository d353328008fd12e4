package storage

import (
	"context"
	"path"
	"strings"

	"orchestra-site/internal/domain/media"
	"orchestra-site/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteOutcome reports what Images.Delete did. None of the outcomes is an
// error for the caller: a failed delete is logged and the save goes on.
type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	Skipped
	Failed
)

func (o DeleteOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Images uploads inline page images and removes the ones a save orphaned.
type Images struct {
	store ObjectStore
	log   *zap.SugaredLogger
}

func NewImages(store ObjectStore, log *zap.SugaredLogger) *Images {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Images{store: store, log: log}
}

// Upload decodes a data:image payload and stores it as
// <prefix>/<kind>-<uuid><ext>, returning its public URL. Failures are logged
// and returned; callers keep the previous image instead.
func (i *Images) Upload(ctx context.Context, payload, prefix, kind string) (string, error) {
	img, err := media.ParseDataURL(payload)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("invalid").Inc()
		i.log.Warnw("inline image rejected", "prefix", prefix, "kind", kind, "error", err)
		return "", err
	}

	key := path.Join(prefix, kind+"-"+uuid.NewString()+img.Extension)
	if err := i.store.Upload(ctx, key, img.Data, img.MIMEType); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		i.log.Errorw("image upload failed", "key", key, "error", err)
		return "", err
	}

	metrics.ImageUploadsTotal.WithLabelValues("uploaded").Inc()
	i.log.Debugw("image uploaded", "key", key, "bytes", len(img.Data))
	return i.store.PublicURL(key), nil
}

// Delete removes the object behind url. URLs outside the bucket or outside
// prefix are skipped.
func (i *Images) Delete(ctx context.Context, url, prefix string) DeleteOutcome {
	key, ok := i.store.KeyFromURL(url)
	if !ok || !strings.HasPrefix(key, strings.TrimRight(prefix, "/")+"/") {
		metrics.ImageDeletesTotal.WithLabelValues(Skipped.String()).Inc()
		i.log.Debugw("image delete skipped, not managed", "url", url, "prefix", prefix)
		return Skipped
	}

	if err := i.store.Remove(ctx, key); err != nil {
		metrics.ImageDeletesTotal.WithLabelValues(Failed.String()).Inc()
		i.log.Warnw("image delete failed", "key", key, "error", err)
		return Failed
	}

	metrics.ImageDeletesTotal.WithLabelValues(Deleted.String()).Inc()
	i.log.Debugw("image deleted", "key", key)
	return Deleted
}
