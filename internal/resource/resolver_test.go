package resource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory ObjectStore for resolver tests.
type fakeStore struct {
	objects   map[string][]byte
	dirs      []string
	getErr    error
	listErr   error
	getCalls  int
	listCalls int
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return data, nil
}

func (f *fakeStore) ListDirs(_ context.Context, _ string) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.dirs, nil
}

func writeFile(t *testing.T, dir, name string, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestResolveLocalHit(t *testing.T) {
	dir := t.TempDir()
	content := `{"var1": {"label": "Variable one"}}`
	local := writeFile(t, dir, "doc.json", content)
	store := &fakeStore{objects: map[string][]byte{"doc.json": []byte(`{"other": 1}`)}}

	r := NewResolver(DefaultPaths(), store, nil)
	loc, err := r.Resolve(context.Background(), local, "doc.json", nil)

	require.NoError(t, err)
	assert.Equal(t, TierLocal, loc.Tier)
	assert.Equal(t, content, string(loc.Data), "local content must be returned verbatim")
	assert.Zero(t, store.getCalls, "remote tier must not be touched on a local hit")
}

func TestResolveLocalMalformed(t *testing.T) {
	dir := t.TempDir()
	local := writeFile(t, dir, "doc.json", `{"broken":`)
	store := &fakeStore{objects: map[string][]byte{"doc.json": []byte(`{}`)}}

	r := NewResolver(DefaultPaths(), store, nil)
	_, err := r.Resolve(context.Background(), local, "doc.json", nil)

	require.Error(t, err)
	assert.True(t, IsMalformedData(err), "expected MalformedDataError, got %v", err)
	assert.Zero(t, store.getCalls, "a broken local file must not fall through to remote")
}

func TestResolveRemoteHit(t *testing.T) {
	content := `{"from": "remote"}`
	store := &fakeStore{objects: map[string][]byte{"d/doc.json": []byte(content)}}

	r := NewResolver(DefaultPaths(), store, nil)
	loc, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "d/doc.json", nil)

	require.NoError(t, err)
	assert.Equal(t, TierRemote, loc.Tier)
	assert.Equal(t, content, string(loc.Data))
}

func TestResolveRemoteMalformed(t *testing.T) {
	store := &fakeStore{objects: map[string][]byte{"doc.json": []byte(`not json`)}}

	r := NewResolver(DefaultPaths(), store, nil)
	_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "doc.json", nil)

	require.Error(t, err)
	assert.True(t, IsMalformedData(err), "expected MalformedDataError, got %v", err)
}

func TestResolveRemoteFault(t *testing.T) {
	cause := errors.New("connection refused")
	store := &fakeStore{getErr: cause}

	r := NewResolver(DefaultPaths(), store, nil)
	_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "doc.json", nil)

	require.Error(t, err)
	assert.True(t, IsStorageAccess(err), "expected StorageAccessError, got %v", err)
	assert.ErrorIs(t, err, cause)
}

func TestResolveFallback(t *testing.T) {
	fallback := []byte(`{"default": true}`)
	tests := []struct {
		name  string
		store ObjectStore
	}{
		{"no store configured", nil},
		{"remote key missing", &fakeStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(DefaultPaths(), tt.store, nil)
			loc, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "doc.json", func() ([]byte, error) {
				return fallback, nil
			})

			require.NoError(t, err)
			assert.Equal(t, TierFallback, loc.Tier)
			assert.Equal(t, fallback, loc.Data, "fallback bytes must be returned exactly")
		})
	}
}

func TestResolveFallbackError(t *testing.T) {
	cause := errors.New("producer broke")

	r := NewResolver(DefaultPaths(), nil, nil)
	_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "", func() ([]byte, error) {
		return nil, cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name  string
		store ObjectStore
	}{
		{"no store configured", nil},
		{"remote returns not found", &fakeStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(DefaultPaths(), tt.store, nil)
			_, err := r.Resolve(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "doc.json", nil)

			require.Error(t, err)
			assert.True(t, IsNotFound(err), "expected NotFoundError, got %v", err)
		})
	}
}

func TestDictionaryResolvesSourceLayout(t *testing.T) {
	dir := t.TempDir()
	content := `{"age": {"label": "Age of respondent"}}`
	writeFile(t, dir, filepath.Join("gss", "gss_dictionary_compute.json"), content)

	r := NewResolver(Paths{Dir: dir, Prefix: DefaultBase}, nil, nil)
	loc, err := r.Dictionary(context.Background(), "gss")

	require.NoError(t, err)
	assert.Equal(t, TierLocal, loc.Tier)
	assert.Equal(t, content, string(loc.Data))
}

func TestCategoriesUsesFallback(t *testing.T) {
	r := NewResolver(Paths{Dir: t.TempDir(), Prefix: DefaultBase}, nil, nil)
	loc, err := r.Categories(context.Background(), "gss", func() ([]byte, error) {
		return []byte(`{"demographic": ["age"]}`), nil
	})

	require.NoError(t, err)
	assert.Equal(t, TierFallback, loc.Tier)
}

func TestSourceValidationRejectsUnsafeNames(t *testing.T) {
	r := NewResolver(DefaultPaths(), nil, nil)

	for _, name := range []string{"", "../etc", "GSS", "a/b", "a b", ".hidden", "-lead"} {
		_, err := r.Dictionary(context.Background(), name)
		assert.True(t, IsInvalidSource(err), "name %q: expected InvalidSourceError, got %v", name, err)

		_, err = r.Categories(context.Background(), name, nil)
		assert.True(t, IsInvalidSource(err), "name %q: expected InvalidSourceError, got %v", name, err)
	}
}
