package contentsync

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"orchestra-site/database"
	"orchestra-site/internal/infra/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	pixelPNG   = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	publicBase = "https://storage.test/media/"
)

// fakeStore is an in-memory storage.ObjectStore that records every call.
type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	uploads     []string
	removes     []string
	failUploads bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUploads {
		return errors.New("store offline")
	}
	s.uploads = append(s.uploads, key)
	s.objects[key] = body
	return nil
}

func (s *fakeStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes = append(s.removes, key)
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) PublicURL(key string) string { return publicBase + key }

func (s *fakeStore) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, publicBase)
	return key, ok && key != ""
}

func (s *fakeStore) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

func (s *fakeStore) removeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.removes)
}

// removedTimes counts how often the object behind url was removed.
func (s *fakeStore) removedTimes(url string) int {
	key, _ := s.KeyFromURL(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, k := range s.removes {
		if k == key {
			n++
		}
	}
	return n
}

func (s *fakeStore) has(url string) bool {
	key, _ := s.KeyFromURL(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

type testEnv struct {
	engine *Engine
	store  *fakeStore
	db     *gorm.DB
	writes *int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	writes := 0
	count := func(*gorm.DB) { writes++ }
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:count_create", count))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:count_update", count))
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:count_delete", count))

	store := newFakeStore()
	log := zap.NewNop().Sugar()
	return &testEnv{
		engine: NewEngine(db, storage.NewImages(store, log), log),
		store:  store,
		db:     db,
		writes: &writes,
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func saveDoc[D any](t *testing.T, env *testEnv, name string, doc *D) *D {
	t.Helper()
	out, err := env.engine.Save(context.Background(), name, mustJSON(t, doc))
	require.NoError(t, err)
	saved, ok := out.(*D)
	require.Truef(t, ok, "unexpected document type %T", out)
	return saved
}

func fetchDoc[D any](t *testing.T, env *testEnv, name string) *D {
	t.Helper()
	out, err := env.engine.Fetch(context.Background(), name)
	require.NoError(t, err)
	doc, ok := out.(*D)
	require.Truef(t, ok, "unexpected document type %T", out)
	return doc
}

func persistedID(t *testing.T, id ChildID) uint {
	t.Helper()
	n, ok := id.Persisted()
	require.True(t, ok, "expected a store-assigned id")
	return n
}
