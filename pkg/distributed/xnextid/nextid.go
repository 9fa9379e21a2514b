package xnextid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/redis/go-redis/v9"

	"github.com/omeyang/rediskit/pkg/storage/xtxn"
)

// keyPrefix 计数器在各节点上的命名空间前缀。
const keyPrefix = "nextid:"

// raiseScript 只升不降的计数器前向传播：
// 仅当传入值大于当前值（或 key 缺失）时写入。
var raiseScript = redis.NewScript(`
	local cur = tonumber(redis.call("GET", KEYS[1]))
	local new = tonumber(ARGV[1])
	if cur == nil or new > cur then
		redis.call("SET", KEYS[1], ARGV[1])
		return 1
	end
	return 0
`)

// NextID 是跨节点协调的单调发号器句柄。
// 可被多个 goroutine 并发使用。
type NextID struct {
	key     string
	clients []redis.UniversalClient
	txns    []*xtxn.Txn
	opts    *Options

	// last 是本进程已返回的最大值，保证单进程严格递增。
	last atomic.Int64
}

// New 创建发号器句柄。
// clients 为独立 Redis 主节点的客户端集合，数量必须为奇数且 ≥ 1。
// 实际计数器 key 为 "nextid:<key>"。
func New(key string, clients []redis.UniversalClient, opts ...Option) (*NextID, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	if len(clients) == 0 {
		return nil, ErrNoClients
	}
	if len(clients)%2 == 0 {
		return nil, ErrEvenClients
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// 轮级重试由 Next 自己负责，单节点事务只尝试一次：
	// 个别节点的提交冲突计为该节点本轮失败，而不是在节点内部消化
	txns := make([]*xtxn.Txn, len(clients))
	for i, c := range clients {
		if c == nil {
			return nil, ErrNilClient
		}
		txn, err := xtxn.New(c, xtxn.WithMaxAttempts(1), xtxn.WithLogger(options.Logger))
		if err != nil {
			return nil, err
		}
		txns[i] = txn
	}

	return &NextID{
		key:     keyPrefix + key,
		clients: clients,
		txns:    txns,
		opts:    options,
	}, nil
}

// Key 返回计数器在各节点上的实际 key。
func (n *NextID) Key() string {
	return n.key
}

// quorum 返回过半数阈值 ⌊N/2⌋+1。
func (n *NextID) quorum() int {
	return len(n.clients)/2 + 1
}

// Next 产生下一个标识。
// 过半数节点提交成功时返回其中的最大值，并将该值前向传播到落后节点；
// 否则整轮退避重试，耗尽后返回 [ErrQuorumNotAchieved]。
func (n *NextID) Next(ctx context.Context) (int64, error) {
	id, err := retry.NewWithData[int64](
		retry.Context(ctx),
		retry.Attempts(uint(n.opts.MaxAttempts)),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errRoundFailed)
		}),
		retry.Delay(n.opts.RetryDelay),
		retry.MaxDelay(n.opts.MaxRetryDelay),
	).Do(func() (int64, error) {
		return n.round(ctx)
	})
	if err != nil {
		if errors.Is(err, errRoundFailed) {
			return 0, fmt.Errorf("%w: %w", ErrQuorumNotAchieved, err)
		}
		return 0, err
	}
	return id, nil
}

// round 执行一轮发号：逐节点 CAS 自增 → quorum 判定 → 前向传播。
func (n *NextID) round(ctx context.Context) (int64, error) {
	values := n.incrementAll(ctx)

	granted := 0
	var max int64
	for _, v := range values {
		if !v.ok {
			continue
		}
		granted++
		if v.value > max {
			max = v.value
		}
	}
	if granted < n.quorum() {
		return 0, fmt.Errorf("%w: %d of %d masters committed", errRoundFailed, granted, len(n.clients))
	}

	// 本进程单调下界：落后于已返回的最大值时整轮重来
	last := n.last.Load()
	if max <= last {
		return 0, fmt.Errorf("%w: value %d not above last issued %d", errRoundFailed, max, last)
	}

	n.propagate(ctx, values, max)

	// 并发 Next 之间 last 只升不降
	for {
		cur := n.last.Load()
		if max <= cur || n.last.CompareAndSwap(cur, max) {
			break
		}
	}
	return max, nil
}

type masterValue struct {
	ok    bool
	value int64
}

// incrementAll 在每个节点上并行执行"读取-自增-提交"事务作用域。
// 提交冲突与传输错误都计为该节点本轮失败。
func (n *NextID) incrementAll(ctx context.Context) []masterValue {
	values := make([]masterValue, len(n.clients))
	var wg sync.WaitGroup
	for i := range n.clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var staged int64
			err := n.txns[i].Run(ctx, func(tx *redis.Tx) error {
				cur, err := tx.Get(ctx, n.key).Int64()
				if err != nil && !errors.Is(err, redis.Nil) {
					return err
				}
				staged = cur + 1
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Set(ctx, n.key, staged, 0)
					return nil
				})
				return err
			}, n.key)
			if err != nil {
				if n.opts.Logger != nil {
					n.opts.Logger.DebugContext(ctx, "xnextid: master increment failed",
						"key", n.key, "error", err)
				}
				return
			}
			values[i] = masterValue{ok: true, value: staged}
		}(i)
	}
	wg.Wait()
	return values
}

// propagate 将本轮结果前向传播到落后或失败的节点。
// 尽力而为：raise-only 脚本保证计数只升不降，个别节点失败由下一轮修复。
// 在返回前汇合，使调用方取消能中止在途请求。
func (n *NextID) propagate(ctx context.Context, values []masterValue, max int64) {
	var wg sync.WaitGroup
	for i := range n.clients {
		if values[i].ok && values[i].value == max {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			if err := raiseScript.Run(opCtx, n.clients[i], []string{n.key}, max).Err(); err != nil {
				if n.opts.Logger != nil {
					n.opts.Logger.DebugContext(ctx, "xnextid: forward propagation failed",
						"key", n.key, "error", err)
				}
			}
		}(i)
	}
	wg.Wait()
}
