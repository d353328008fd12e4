package contentsync

import (
	"context"

	"orchestra-site/internal/domain/media"
	"orchestra-site/internal/infra/storage"

	"go.uber.org/zap"
)

// ImageStore is the part of storage.Images the engine uses.
type ImageStore interface {
	Upload(ctx context.Context, payload, prefix, kind string) (string, error)
	Delete(ctx context.Context, url, prefix string) storage.DeleteOutcome
}

// imageResolver turns inline payloads of one save into durable URLs and
// remembers what it uploaded so an aborted save can clean up.
type imageResolver struct {
	ctx      context.Context
	images   ImageStore
	prefix   string
	log      *zap.SugaredLogger
	uploaded []string
}

func newImageResolver(ctx context.Context, images ImageStore, prefix string, log *zap.SugaredLogger) *imageResolver {
	return &imageResolver{ctx: ctx, images: images, prefix: prefix, log: log}
}

// resolve returns the value to persist for an image field. An inline payload
// is uploaded; when that fails the previously stored value is kept.
func (r *imageResolver) resolve(value, previous, kind string) string {
	if !media.IsInline(value) {
		return value
	}

	url, err := r.images.Upload(r.ctx, value, r.prefix, kind)
	if err != nil {
		r.log.Warnw("keeping previous image after failed upload",
			"prefix", r.prefix, "kind", kind, "previous", previous, "error", err)
		return previous
	}
	r.uploaded = append(r.uploaded, url)
	return url
}

// discard removes everything uploaded by this resolver.
func (r *imageResolver) discard() {
	for _, url := range r.uploaded {
		r.images.Delete(r.ctx, url, r.prefix)
	}
	r.uploaded = nil
}

// imageIndex maps persisted child ids to the image they had before the save.
type imageIndex map[uint]string

func indexImages[D any](docs []D, pick func(*D) (ChildID, string)) imageIndex {
	idx := make(imageIndex, len(docs))
	for i := range docs {
		id, url := pick(&docs[i])
		if n, ok := id.Persisted(); ok {
			idx[n] = url
		}
	}
	return idx
}

// previous falls back to "" for entities that were never saved.
func (idx imageIndex) previous(id ChildID) string {
	if n, ok := id.Persisted(); ok {
		return idx[n]
	}
	return ""
}

// orphans lists stored URLs from before that after no longer references.
func orphans(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}

	seen := make(map[string]struct{}, len(before))
	var out []string
	for _, u := range before {
		if u == "" || media.IsInline(u) {
			continue
		}
		if _, ok := keep[u]; ok {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
