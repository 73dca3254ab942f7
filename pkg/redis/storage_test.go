package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabflow/backend/pkg/redis"
)

// fakeClient answers the commands Storage issues from an in-memory map.
// Any other command panics on the nil embedded interface.
type fakeClient struct {
	goredis.UniversalClient

	data  map[string]string
	pages [][]string
	scans []uint64
	err   error
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, _ time.Duration) *goredis.StatusCmd {
	f.data[key] = string(value.([]byte))
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

// Scan serves pages in order; the cursor is the index of the next page.
func (f *fakeClient) Scan(_ context.Context, cursor uint64, _ string, count int64) *goredis.ScanCmd {
	f.scans = append(f.scans, cursor)
	if f.err != nil {
		return goredis.NewScanCmdResult(nil, 0, f.err)
	}
	next := cursor + 1
	if int(next) >= len(f.pages) {
		next = 0
	}
	return goredis.NewScanCmdResult(f.pages[cursor], next, nil)
}

func newFake() *fakeClient {
	return &fakeClient{data: map[string]string{}}
}

func TestStorage_GetSetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fc := newFake()
	s := redis.NewStorage(fc)

	val, err := s.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.Nil(t, val, "miss returns nil")

	require.NoError(t, s.Set(ctx, "session:1", []byte("payload"), time.Minute))
	val, err = s.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, s.Delete(ctx, "session:1"))
	val, err = s.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorage_IgnoresEmptyInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fc := newFake()
	s := redis.NewStorage(fc)

	require.NoError(t, s.Set(ctx, "", []byte("x"), 0))
	require.NoError(t, s.Set(ctx, "k", nil, 0))
	assert.Empty(t, fc.data)

	val, err := s.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, s.Delete(ctx, ""))
}

func TestStorage_GetError(t *testing.T) {
	t.Parallel()

	boom := errors.New("i/o timeout")
	fc := newFake()
	fc.err = boom

	_, err := redis.NewStorage(fc).Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}

func TestStorage_KeysFollowsCursor(t *testing.T) {
	t.Parallel()

	fc := newFake()
	fc.pages = [][]string{{"a", "b"}, {}, {"c"}}
	s := redis.NewStorageWithConfig(fc, redis.Config{ScanBatchSize: 2})

	keys, err := s.Keys(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []uint64{0, 1, 2}, fc.scans)
}

func TestStorage_KeysError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	fc := newFake()
	fc.err = boom

	keys, err := redis.NewStorage(fc).Keys(context.Background(), "session:*")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, keys)
}
