package xmemo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/omeyang/rediskit/pkg/util/xcodec"
)

// 保留 field：命中/未命中计数与缓存条目共存于同一个 Hash。
const (
	hitsField   = "__hits__"
	missesField = "__misses__"
)

// Func 定义被包装的可调用对象。
// 必须是纯函数：同样的参数总是产生同样的返回值。
type Func func(ctx context.Context, args ...any) (any, error)

// NamedArg 表示一个命名参数。
// 指纹计算前命名参数按名字排序，与传入顺序无关。
type NamedArg struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Named 构造命名参数。
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Stats 是缓存的累计统计。
type Stats struct {
	Hits   int64
	Misses int64
	Size   int64 // 用户条目数，不含计数 field
}

// HitRate 返回命中率，无任何调用时为 0。
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache 将一个纯函数绑定到一个 Redis Hash。
// 无内部可变状态，可并发使用。
type Cache struct {
	client redis.UniversalClient
	key    string
	fn     Func
	opts   *Options
}

// New 创建记忆化缓存。
// key 为 Redis Hash 的名字，fn 为被包装的纯函数。
func New(client redis.UniversalClient, key string, fn Func, opts ...Option) (*Cache, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	if fn == nil {
		return nil, ErrNilFunc
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Cache{client: client, key: key, fn: fn, opts: options}, nil
}

// Key 返回缓存 Hash 的名字。
func (c *Cache) Key() string {
	return c.key
}

// Call 以记忆化方式调用被包装函数。
// 命中返回解码后的缓存值并累加命中计数；未命中调用函数、缓存结果、
// 累加未命中计数并刷新 TTL，返回本次计算的值。
func (c *Cache) Call(ctx context.Context, args ...any) (any, error) {
	field, err := fingerprint(args)
	if err != nil {
		return nil, err
	}

	cached, err := c.client.HGet(ctx, c.key, field).Result()
	switch {
	case err == nil:
		var value any
		if err := xcodec.UnmarshalString(cached, &value); err != nil {
			return nil, err
		}
		if err := c.client.HIncrBy(ctx, c.key, hitsField, 1).Err(); err != nil && c.opts.Logger != nil {
			c.opts.Logger.WarnContext(ctx, "xmemo: hit counter update failed",
				"key", c.key, "error", err)
		}
		return value, nil
	case errors.Is(err, redis.Nil):
		// 未命中，落到计算路径
	default:
		return nil, err
	}

	value, err := c.fn(ctx, args...)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, field, value, true); err != nil {
		return nil, err
	}
	return value, nil
}

// Bypass 绕过缓存读取：总是调用被包装函数并写入结果，不触碰计数。
func (c *Cache) Bypass(ctx context.Context, args ...any) (any, error) {
	field, err := fingerprint(args)
	if err != nil {
		return nil, err
	}

	value, err := c.fn(ctx, args...)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, field, value, false); err != nil {
		return nil, err
	}
	return value, nil
}

// store 编码并写入一个条目，按需累加未命中计数、刷新 TTL。
// 写入与计数在一次 pipeline 中完成。
func (c *Cache) store(ctx context.Context, field string, value any, countMiss bool) error {
	encoded, err := xcodec.MarshalString(value)
	if err != nil {
		return err
	}

	_, err = c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.key, field, encoded)
		if countMiss {
			pipe.HIncrBy(ctx, c.key, missesField, 1)
		}
		if c.opts.TTL > 0 {
			pipe.Expire(ctx, c.key, c.opts.TTL)
		}
		return nil
	})
	return err
}

// Info 返回累计命中/未命中计数与当前条目数（不含计数 field）。
func (c *Cache) Info(ctx context.Context) (Stats, error) {
	var (
		hitsCmd   *redis.StringCmd
		missesCmd *redis.StringCmd
		lenCmd    *redis.IntCmd
	)
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		hitsCmd = pipe.HGet(ctx, c.key, hitsField)
		missesCmd = pipe.HGet(ctx, c.key, missesField)
		lenCmd = pipe.HLen(ctx, c.key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Stats{}, err
	}

	stats := Stats{Size: lenCmd.Val()}
	if hits, err := hitsCmd.Int64(); err == nil {
		stats.Hits = hits
		stats.Size--
	}
	if misses, err := missesCmd.Int64(); err == nil {
		stats.Misses = misses
		stats.Size--
	}
	if stats.Size < 0 {
		stats.Size = 0
	}
	return stats, nil
}

// Clear 删除整个 Hash，条目与计数一并清零。
func (c *Cache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

// fingerprint 将一次调用的参数规范化并压缩为 128 位指纹。
// 位置参数保持顺序，命名参数按名字排序后并入；整体经 xcodec 编码，
// SHA-256 截断 128 位，十六进制即 Hash field。
func fingerprint(args []any) (string, error) {
	positional := make([]any, 0, len(args))
	named := make([]NamedArg, 0)
	for _, a := range args {
		if na, ok := a.(NamedArg); ok {
			named = append(named, na)
			continue
		}
		positional = append(positional, a)
	}
	sort.Slice(named, func(i, j int) bool { return named[i].Name < named[j].Name })

	kwargs := make(map[string]any, len(named))
	for _, na := range named {
		kwargs[na.Name] = na.Value
	}

	payload := struct {
		Args   []any          `json:"args"`
		Kwargs map[string]any `json:"kwargs"`
	}{Args: positional, Kwargs: kwargs}

	encoded, err := xcodec.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:16]), nil
}
