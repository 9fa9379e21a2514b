package xtxn

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/redis/go-redis/v9"
)

// TxFunc 定义事务作用域回调。
// 回调内通过 tx 读取被观察的 key，并经 tx.TxPipelined 暂存写操作。
// 提交冲突时整个回调会被重新执行，因此必须可重入。
type TxFunc func(tx *redis.Tx) error

// Txn 将乐观事务作用域绑定到一个 Redis 客户端。
// 无内部状态，可并发使用。
type Txn struct {
	client redis.UniversalClient
	opts   *Options
}

// New 创建事务执行器。
func New(client redis.UniversalClient, opts ...Option) (*Txn, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Txn{client: client, opts: options}, nil
}

// Run 执行一个乐观事务作用域：WATCH keys → fn 读取并暂存 → EXEC 提交。
// 提交冲突（redis.TxFailedErr）时以带抖动的指数退避重试整个作用域，
// 重试耗尽返回 [ErrContention]。其他错误立即返回。
func (t *Txn) Run(ctx context.Context, fn TxFunc, keys ...string) error {
	if fn == nil {
		return ErrNilFunc
	}
	if len(keys) == 0 {
		return ErrNoKeys
	}

	err := retry.New(
		retry.Context(ctx),
		retry.Attempts(safeAttempts(t.opts.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, redis.TxFailedErr)
		}),
		retry.DelayType(func(n uint, _ error, _ retry.DelayContext) time.Duration {
			return t.nextDelay(n)
		}),
		retry.OnRetry(func(n uint, err error) {
			if t.opts.Logger != nil {
				t.opts.Logger.DebugContext(ctx, "xtxn: commit conflict, retrying",
					"attempt", n, "keys", keys, "error", err)
			}
		}),
	).Do(func() error {
		return t.client.Watch(ctx, func(tx *redis.Tx) error {
			return fn(tx)
		}, keys...)
	})

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: %w", ErrContention, err)
	}
	return err
}

// nextDelay 计算第 n 次重试前的延迟（n 从 1 开始）。
// delay = min(initial * 2^(n-1), max) * (1 + rand(-1,1) * jitter)
func (t *Txn) nextDelay(n uint) time.Duration {
	if n < 1 {
		n = 1
	}
	base := float64(t.opts.InitialDelay) * math.Pow(2, float64(n-1))
	if base > float64(t.opts.MaxDelay) {
		base = float64(t.opts.MaxDelay)
	}
	if t.opts.Jitter > 0 {
		base *= 1 + (randomFloat64()*2-1)*t.opts.Jitter
	}
	if math.IsNaN(base) || base < 0 {
		return t.opts.MaxDelay
	}
	if base > float64(t.opts.MaxDelay) {
		return t.opts.MaxDelay
	}
	return time.Duration(base)
}

func safeAttempts(n int) uint {
	if n <= 0 {
		return 1
	}
	return uint(n)
}

const (
	floatBits  = 53
	floatScale = 1.0 / (1 << floatBits)
)

// randomFloat64 返回 [0, 1) 内的随机数。
// crypto/rand 失败时返回 0，意味着无抖动（安全默认值）。
func randomFloat64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return float64(binary.LittleEndian.Uint64(buf[:])>>11) * floatScale
}
