package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisContract(t *testing.T) {
	r, _ := newTestRedis(t)
	runContract(t, r)
}

func TestRedisWritesHashes(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	require.NoError(t, r.SetField(ctx, "repo-1", "Author Name", "ann"))

	assert.True(t, mr.Exists("repo-1"))
	assert.Equal(t, "ann", mr.HGet("repo-1", "Author Name"))
}

func TestRedisSelectsLogicalDatabase(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	repos, err := OpenRedis(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer repos.Close()
	issues, err := OpenRedis(ctx, mr.Addr(), "", 1)
	require.NoError(t, err)
	defer issues.Close()

	require.NoError(t, issues.SetField(ctx, "iss-1", "Description", "crash"))

	ok, err := repos.Exists(ctx, "iss-1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = issues.Exists(ctx, "iss-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisTransportError(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	_, err := r.Exists(context.Background(), "k")
	assert.Error(t, err)
	_, _, err = r.GetField(context.Background(), "k", "f")
	assert.Error(t, err)
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestNewRedisWrapsClient(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer r.Close()
	require.NoError(t, r.SetField(context.Background(), "k", "f", "v"))
	assert.Equal(t, "v", mr.HGet("k", "f"))
}
