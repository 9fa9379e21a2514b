package xmemo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/rediskit/pkg/util/xcodec"
)

// echoFunc 返回第一个参数，并记录真实调用次数。
type echoFunc struct {
	calls int
}

func (e *echoFunc) fn(_ context.Context, args ...any) (any, error) {
	e.calls++
	if len(args) == 0 {
		return nil, nil
	}
	return args[0], nil
}

func newTestCache(t *testing.T, opts ...Option) (*Cache, *echoFunc, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	echo := &echoFunc{}
	cache, err := New(client, "memo:test", echo.fn, opts...)
	require.NoError(t, err)
	return cache, echo, mr
}

// =============================================================================
// 工厂函数测试
// =============================================================================

func TestNew_Validation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	fn := func(context.Context, ...any) (any, error) { return nil, nil }

	_, err = New(nil, "k", fn)
	assert.ErrorIs(t, err, ErrNilClient)

	_, err = New(client, "  ", fn)
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = New(client, "k", nil)
	assert.ErrorIs(t, err, ErrNilFunc)
}

// =============================================================================
// Call 命中/未命中测试
// =============================================================================

func TestCall_HitMissCounters(t *testing.T) {
	cache, echo, _ := newTestCache(t)
	ctx := context.Background()

	// f(5) → miss=1
	got, err := cache.Call(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got)
	stats, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 0, Misses: 1, Size: 1}, stats)

	// f(5) → hit=1, miss=1，函数不再执行
	got, err = cache.Call(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got)
	assert.Equal(t, 1, echo.calls)
	stats, err = cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Size: 1}, stats)

	// f(6) → hit=1, miss=2
	got, err = cache.Call(ctx, 6)
	require.NoError(t, err)
	assert.EqualValues(t, 6, got)
	stats, err = cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 1, Misses: 2, Size: 2}, stats)

	// clear → info == (0, 0, 0)
	require.NoError(t, cache.Clear(ctx))
	stats, err = cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestCall_PureFunctionEquivalence(t *testing.T) {
	cache, _, _ := newTestCache(t)
	ctx := context.Background()

	// JSON 原生类型经缓存往返后与直接调用一致
	want := map[string]any{"total": float64(12), "items": []any{"a", "b"}}
	got, err := cache.Call(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = cache.Call(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCall_NamedArgs_OrderInsensitive(t *testing.T) {
	cache, echo, _ := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Call(ctx, Named("page", 1), Named("size", 20))
	require.NoError(t, err)
	_, err = cache.Call(ctx, Named("size", 20), Named("page", 1))
	require.NoError(t, err)

	// 两次调用指纹相同：第二次命中
	assert.Equal(t, 1, echo.calls)
	stats, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestCall_UnencodableArg_SurfacesErrEncoding(t *testing.T) {
	cache, echo, _ := newTestCache(t)

	_, err := cache.Call(context.Background(), make(chan int))
	assert.ErrorIs(t, err, xcodec.ErrEncoding)
	// 函数与缓存都未被触碰
	assert.Equal(t, 0, echo.calls)
}

func TestCall_FuncError_NotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	boom := errors.New("boom")
	calls := 0
	cache, err := New(client, "memo:fail", func(context.Context, ...any) (any, error) {
		calls++
		return nil, boom
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Call(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = cache.Call(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)

	stats, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Size)
}

// =============================================================================
// Bypass 测试
// =============================================================================

func TestBypass_AlwaysInvokes_NoCounters(t *testing.T) {
	cache, echo, _ := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Bypass(ctx, 5)
	require.NoError(t, err)
	_, err = cache.Bypass(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, echo.calls)

	stats, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 0, Misses: 0, Size: 1}, stats)

	// Bypass 写入的条目可被后续 Call 命中
	_, err = cache.Call(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, echo.calls)
}

// =============================================================================
// TTL 测试
// =============================================================================

func TestCall_RefreshesTTLOnWrite(t *testing.T) {
	cache, _, mr := newTestCache(t, WithTTL(time.Minute))
	ctx := context.Background()

	_, err := cache.Call(ctx, 1)
	require.NoError(t, err)
	assert.Greater(t, mr.TTL("memo:test"), 50*time.Second)

	mr.FastForward(30 * time.Second)
	_, err = cache.Call(ctx, 2)
	require.NoError(t, err)
	assert.Greater(t, mr.TTL("memo:test"), 50*time.Second)
}

func TestHash_ExpiresEntirely(t *testing.T) {
	cache, echo, mr := newTestCache(t, WithTTL(time.Minute))
	ctx := context.Background()

	_, err := cache.Call(ctx, 1)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	// 过期后重新计算，计数也从零开始
	_, err = cache.Call(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, echo.calls)
	stats, err := cache.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Hits: 0, Misses: 1, Size: 1}, stats)
}

// =============================================================================
// 指纹测试
// =============================================================================

func TestFingerprint_Deterministic(t *testing.T) {
	a, err := fingerprint([]any{1, "x", Named("k", true)})
	require.NoError(t, err)
	b, err := fingerprint([]any{1, "x", Named("k", true)})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32) // 128 位十六进制

	c, err := fingerprint([]any{2, "x", Named("k", true)})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestFingerprint_PositionalOrderMatters(t *testing.T) {
	a, err := fingerprint([]any{1, 2})
	require.NoError(t, err)
	b, err := fingerprint([]any{2, 1})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
