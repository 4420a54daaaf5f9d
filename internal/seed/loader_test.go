package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recmap/internal/mapper"
	"recmap/internal/model"
	"recmap/internal/store"
)

func TestLoadDir(t *testing.T) {
	files, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, files, 2)

	// порядок имён файлов: issues.yml, repos.yaml
	assert.Equal(t, "issues", files[0].Name)
	assert.Equal(t, "repos", files[1].Name)
	require.Len(t, files[0].Records, 3)
	assert.Equal(t, "ann", files[1].Records[0].Fields["Author Name"])
}

func TestLoadFileRejectsRecordWithoutKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records:\n  - fields: {a: b}\n"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)

	_, err = LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestApplyFeedsMapper(t *testing.T) {
	ctx := context.Background()
	files, err := LoadDir("testdata")
	require.NoError(t, err)

	mem := store.NewMemory()
	n, err := Apply(ctx, mem, files)
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	reg, err := model.NewRegistry(nil)
	require.NoError(t, err)
	e := mapper.New(mem, reg)

	r, ok, err := mapper.LoadAs(ctx, e, &model.Repo{ID: "r1"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/acme/widgets", r.URL)
	assert.Equal(t, "ann", r.AuthorName)
	assert.Equal(t, int64(12), r.Stars)
	assert.Equal(t, []string{"go", "sql"}, r.Languages)
	require.Len(t, r.Issues, 2)
	assert.Equal(t, int32(42), r.Issues[0].Line)
	assert.Equal(t, "leak in cache", r.Issues[1].Description)
	require.NotNil(t, r.Owner)
	assert.Equal(t, "Ann", r.Owner.Name)
}

type failingStore struct{ store.Store }

func (failingStore) SetField(context.Context, string, string, string) error {
	return errors.New("read-only")
}

func TestApplyStopsOnStoreError(t *testing.T) {
	files := []File{{Name: "x", Records: []Record{{Key: "k", Fields: map[string]string{"a": "1"}}}}}
	n, err := Apply(context.Background(), failingStore{store.NewMemory()}, files)
	assert.Error(t, err)
	assert.Zero(t, n)
}
