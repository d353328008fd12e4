// Package contentsync validates page documents submitted by editors, writes
// them to the database and keeps the object store in step with the images
// the documents reference.
//
// A save runs in this order:
//
//  1. decode and validate the document (no side effects on failure)
//  2. load the stored document and check its version
//  3. upload inline images, falling back to the stored image on failure
//  4. in one transaction: upsert the parent row, replace every child list
//  5. delete stored images the new document no longer references
//  6. reload and return the stored document
package contentsync

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Revision is embedded by every document.
type Revision struct {
	Version int64 `json:"version"`
}

func (r Revision) CurrentVersion() int64 { return r.Version }

type versioned interface {
	CurrentVersion() int64
}

// VersionOf returns the version carried by a document returned from Fetch or Save.
func VersionOf(doc any) int64 {
	if v, ok := doc.(versioned); ok {
		return v.CurrentVersion()
	}
	return 0
}

// kind wires one page type into the engine.
type kind[D any] struct {
	name    string
	editors []string

	defaults func() *D
	// load returns nil, nil while the page has never been saved.
	load    func(db *gorm.DB) (*D, error)
	prepare func(d *D)
	resolve func(r *imageResolver, old, next *D)
	images  func(d *D) []string
	persist func(tx *gorm.DB, d *D) error
}

type handler interface {
	typeName() string
	allowed() []string
	fetch(ctx context.Context, e *Engine) (any, error)
	save(ctx context.Context, e *Engine, body []byte) (any, error)
}

// Engine holds the page types and their shared collaborators.
type Engine struct {
	db     *gorm.DB
	images ImageStore
	log    *zap.SugaredLogger
	kinds  map[string]handler
}

func NewEngine(db *gorm.DB, images ImageStore, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	e := &Engine{
		db:     db,
		images: images,
		log:    log,
		kinds:  map[string]handler{},
	}
	e.register(homepageKind())
	e.register(concertsKind())
	e.register(competitionsKind())
	e.register(tripsKind())
	e.register(awardsKind())
	e.register(resourcesKind())
	return e
}

func (e *Engine) register(h handler) {
	e.kinds[h.typeName()] = h
}

// Types lists the registered page types in name order.
func (e *Engine) Types() []string {
	names := make([]string, 0, len(e.kinds))
	for name := range e.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Editors returns the roles allowed to save the given page type.
func (e *Engine) Editors(name string) []string {
	if h, ok := e.kinds[name]; ok {
		return h.allowed()
	}
	return nil
}

// Fetch assembles the stored document, or the defaults before the first save.
func (e *Engine) Fetch(ctx context.Context, name string) (any, error) {
	h, ok := e.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return h.fetch(ctx, e)
}

// Save reconciles the stored page with the submitted JSON document and
// returns the document as stored afterwards.
func (e *Engine) Save(ctx context.Context, name string, body []byte) (any, error) {
	h, ok := e.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	doc, err := h.save(ctx, e, body)
	switch {
	case err == nil:
		metrics.ContentSavesTotal.WithLabelValues(name, "saved").Inc()
	case errors.As(err, new(*ValidationError)):
		metrics.ContentSavesTotal.WithLabelValues(name, "invalid").Inc()
	case errors.Is(err, ErrVersionConflict):
		metrics.ContentSavesTotal.WithLabelValues(name, "conflict").Inc()
	default:
		metrics.ContentSavesTotal.WithLabelValues(name, "failed").Inc()
	}
	return doc, err
}

func (k *kind[D]) typeName() string  { return k.name }
func (k *kind[D]) allowed() []string { return k.editors }

func (k *kind[D]) fetch(ctx context.Context, e *Engine) (any, error) {
	doc, err := k.load(e.db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", k.name, err)
	}
	if doc == nil {
		return k.defaults(), nil
	}
	return doc, nil
}

func (k *kind[D]) save(ctx context.Context, e *Engine, body []byte) (any, error) {
	next := new(D)
	if err := decodeDocument(body, next); err != nil {
		return nil, err
	}
	if k.prepare != nil {
		k.prepare(next)
	}

	db := e.db.WithContext(ctx)
	old, err := k.load(db)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", k.name, err)
	}
	if old == nil {
		old = new(D)
	}
	if VersionOf(next) != VersionOf(old) {
		return nil, ErrVersionConflict
	}

	var res *imageResolver
	if k.resolve != nil {
		res = newImageResolver(ctx, e.images, k.name, e.log)
		k.resolve(res, old, next)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return k.persist(tx, next)
	})
	if err != nil {
		if res != nil {
			res.discard()
		}
		if !errors.Is(err, ErrVersionConflict) {
			err = fmt.Errorf("persist %s: %w", k.name, err)
		}
		return nil, err
	}

	if k.images != nil {
		for _, url := range orphans(k.images(old), k.images(next)) {
			e.images.Delete(ctx, url, k.name)
		}
	}

	saved, err := k.load(db)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", k.name, err)
	}
	e.log.Infow("content saved", "type", k.name, "version", VersionOf(saved))
	return saved, nil
}

type stamper interface {
	Stamp(version int64)
}

// upsertRecord writes the parent row with version base+1. The row is only
// created when base is 0 and only updated while the stored version is base,
// so two saves from the same starting version cannot both succeed.
func upsertRecord(tx *gorm.DB, row stamper, base int64) error {
	if base == 0 {
		row.Stamp(1)
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrVersionConflict
			}
			return err
		}
		return nil
	}

	row.Stamp(base + 1)
	res := tx.Model(row).
		Select("*").
		Omit("created_at").
		Where("version = ?", base).
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// loadRecord reads the singleton parent row into row. found is false when
// the page has never been saved.
func loadRecord(db *gorm.DB, row any) (found bool, err error) {
	err = db.First(row, content.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
