package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recmap/internal/store"
)

// run выполняет команду над общим хранилищем и возвращает stdout.
func run(t *testing.T, st store.Backend, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{st: st, log: zap.NewNop(), out: &out}
	root := newRootCmd(a)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json")}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestRawRecordCommands(t *testing.T) {
	mem := store.NewMemory()

	out, err := run(t, mem, "exists", "r1")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = run(t, mem, "set", "r1", "Author Name", "ann")
	require.NoError(t, err)

	out, err = run(t, mem, "get", "r1", "Author Name")
	require.NoError(t, err)
	assert.Equal(t, "ann\n", out)

	_, err = run(t, mem, "get", "r1", "missing")
	assert.ErrorIs(t, err, errFieldNotSet)

	out, err = run(t, mem, "dump", "r1", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "key: r1")
	assert.Contains(t, out, "Author Name: ann")
	assert.NotContains(t, out, "nope")
}

func TestSeedThenLoad(t *testing.T) {
	mem := store.NewMemory()
	out, err := run(t, mem, "seed", filepath.Join("..", "..", "seed"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "seeded 19 fields from 2 files"), out)

	out, err = run(t, mem, "load", "repo", "r1")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ann", got["authorName"])
	assert.Len(t, got["issues"], 2)

	_, err = run(t, mem, "load", "repo", "missing")
	assert.Error(t, err)
	_, err = run(t, mem, "load", "nope", "1")
	assert.Error(t, err)
}

func TestLoadFetchesLazyField(t *testing.T) {
	mem := store.NewMemory()
	_, err := run(t, mem, "set", "r9", "readme", "# docs")
	require.NoError(t, err)

	out, err := run(t, mem, "load", "repo", "r9")
	require.NoError(t, err)
	assert.NotContains(t, out, "# docs")

	out, err = run(t, mem, "load", "repo", "r9", "--fetch", "readme")
	require.NoError(t, err)
	assert.Contains(t, out, "# docs")
}

func TestDumpOutputSeedsAgain(t *testing.T) {
	src := store.NewMemory()
	_, err := run(t, src, "set", "k", "a", "1")
	require.NoError(t, err)
	out, err := run(t, src, "dump", "k")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dump.yaml"), []byte(out), 0o644))

	dst := store.NewMemory()
	_, err = run(t, dst, "seed", dir)
	require.NoError(t, err)
	v, ok, err := dst.GetField(t.Context(), "k", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
