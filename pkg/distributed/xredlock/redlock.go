package xredlock

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cleanupTimeout 调用方 context 已失效时，尽力释放使用的独立上下文时长。
const cleanupTimeout = 5 * time.Second

// minValidityMargin 有效窗口计算中扣除的固定余量，
// 补偿节点间 key 过期时刻的最小差异。
const minValidityMargin = 2 * time.Millisecond

// Mutex 是跨 N 个独立 Redis 主节点的分布式互斥锁句柄。
// 每个句柄一次只承载一次获取；内部状态由互斥保护。
type Mutex struct {
	key     string
	clients []redis.UniversalClient
	opts    *Options

	mu             sync.Mutex
	held           bool
	token          string
	acquiredAt     time.Time
	deadline       time.Time
	extensionsLeft int
}

// New 创建分布式锁句柄。
// clients 为独立 Redis 主节点的客户端集合，数量必须为奇数且 ≥ 1。
// key 在所有节点上原样使用。
func New(key string, clients []redis.UniversalClient, opts ...Option) (*Mutex, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	if len(clients) == 0 {
		return nil, ErrNoClients
	}
	if len(clients)%2 == 0 {
		return nil, ErrEvenClients
	}
	for _, c := range clients {
		if c == nil {
			return nil, ErrNilClient
		}
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Mutex{
		key:     key,
		clients: clients,
		opts:    options,
	}, nil
}

// Key 返回锁的 key。
func (m *Mutex) Key() string {
	return m.key
}

// quorum 返回过半数阈值 ⌊N/2⌋+1。
func (m *Mutex) quorum() int {
	return len(m.clients)/2 + 1
}

// drift 返回有效窗口计算中扣除的时钟漂移余量。
func (m *Mutex) drift() time.Duration {
	return time.Duration(float64(m.opts.AutoReleaseTime)*m.opts.DriftFactor) + minValidityMargin
}

// Acquire 获取锁。
// 阻塞模式下在竞争时随机退避重试，直到成功、超时或 ctx 取消；
// 非阻塞模式只尝试一轮。返回 (true, nil) 表示获取成功。
// 竞争落败（含超时）返回 (false, nil)；ctx 被取消返回 (false, ctx.Err())。
// 对已持有的句柄调用返回 [ErrAlreadyAcquired]。
func (m *Mutex) Acquire(ctx context.Context) (bool, error) {
	return m.acquire(ctx, m.opts.Blocking, m.opts.Timeout)
}

func (m *Mutex) acquire(ctx context.Context, blocking bool, timeout time.Duration) (bool, error) {
	m.mu.Lock()
	if m.held {
		m.mu.Unlock()
		return false, ErrAlreadyAcquired
	}
	m.mu.Unlock()

	if blocking && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	for {
		ok, err := m.tryAcquireOnce(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if !blocking {
			return false, nil
		}

		select {
		case <-ctx.Done():
			// 等待超时视为竞争落败；取消则把原因交还调用方
			if errors.Is(ctx.Err(), context.Canceled) {
				return false, ctx.Err()
			}
			return false, nil
		case <-time.After(randomDelay(m.opts.RetryDelay)):
		}
	}
}

// tryAcquireOnce 执行一轮 Redlock 获取：SET NX PX 扇出 → 计数 → 有效窗口判定。
// 落败时尽力释放本轮令牌。仅当 ctx 失效时返回错误。
func (m *Mutex) tryAcquireOnce(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		return false, nil
	}

	token, err := freshToken()
	if err != nil {
		return false, err
	}

	start := time.Now()
	granted := m.fanOut(ctx, func(ctx context.Context, c redis.UniversalClient) (bool, error) {
		return c.SetNX(ctx, m.key, token, m.opts.AutoReleaseTime).Result()
	})
	validity := m.opts.AutoReleaseTime - time.Since(start) - m.drift()

	if granted >= m.quorum() && validity > 0 {
		m.mu.Lock()
		m.held = true
		m.token = token
		m.acquiredAt = start
		m.deadline = start.Add(validity)
		m.extensionsLeft = m.opts.NumExtensions
		m.mu.Unlock()
		return true, nil
	}

	// 部分节点可能已写入令牌，立即归还而非等待租约过期
	m.releaseToken(ctx, token)
	return false, nil
}

// Release 释放锁：向所有节点扇出"令牌比对 + 删除"脚本。
// 释放是尽力而为的——个别节点不可达不构成失败，其租约会自然过期。
// 未持有时返回 [ErrNotAcquired]。
func (m *Mutex) Release(ctx context.Context) error {
	m.mu.Lock()
	if !m.held {
		m.mu.Unlock()
		return ErrNotAcquired
	}
	token := m.token
	m.held = false
	m.token = ""
	m.mu.Unlock()

	m.releaseToken(ctx, token)
	return nil
}

// releaseToken 向所有节点尽力释放指定令牌。
// 调用方 ctx 已失效时切换到独立清理上下文，避免锁残留到租约过期。
func (m *Mutex) releaseToken(ctx context.Context, token string) {
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer cancel()
	}
	m.fanOut(ctx, func(ctx context.Context, c redis.UniversalClient) (bool, error) {
		n, err := releaseScript.Run(ctx, c, []string{m.key}, token).Int()
		return n == 1, err
	})
}

// Extend 续期：向所有节点扇出"令牌比对 + PEXPIRE"脚本。
// 过半数节点完成刷新且重算的有效窗口为正时续期成功，否则返回
// [ErrQuorumNotAchieved]。续期次数超过上限返回 [ErrTooManyExtensions]，
// 未持有时返回 [ErrExtendUnlocked]。
func (m *Mutex) Extend(ctx context.Context) error {
	m.mu.Lock()
	if !m.held {
		m.mu.Unlock()
		return ErrExtendUnlocked
	}
	if m.extensionsLeft <= 0 {
		m.mu.Unlock()
		return ErrTooManyExtensions
	}
	token := m.token
	m.mu.Unlock()

	start := time.Now()
	granted := m.fanOut(ctx, func(ctx context.Context, c redis.UniversalClient) (bool, error) {
		n, err := extendScript.Run(ctx, c, []string{m.key},
			token, m.opts.AutoReleaseTime.Milliseconds()).Int()
		return n == 1, err
	})
	validity := m.opts.AutoReleaseTime - time.Since(start) - m.drift()

	if granted < m.quorum() || validity <= 0 {
		return ErrQuorumNotAchieved
	}

	m.mu.Lock()
	m.deadline = start.Add(validity)
	m.extensionsLeft--
	m.mu.Unlock()
	return nil
}

// Locked 返回本句柄当前获取的剩余有效时间。
// 取过半数节点上令牌仍匹配的最小剩余 TTL，扣除漂移余量；
// 匹配节点不足 quorum 或句柄未持有时返回 0。
func (m *Mutex) Locked(ctx context.Context) (time.Duration, error) {
	m.mu.Lock()
	held := m.held
	token := m.token
	m.mu.Unlock()
	if !held {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	type result struct {
		ok   bool
		pttl int64
	}
	results := make(chan result, len(m.clients))
	perMaster := m.perMasterTimeout()
	for _, c := range m.clients {
		go func(c redis.UniversalClient) {
			opCtx, cancel := context.WithTimeout(ctx, perMaster)
			defer cancel()
			n, err := remainingScript.Run(opCtx, c, []string{m.key}, token).Int64()
			if err != nil || n < 0 {
				results <- result{}
				return
			}
			results <- result{ok: true, pttl: n}
		}(c)
	}

	matching := 0
	minTTL := int64(-1)
	for range m.clients {
		r := <-results
		if !r.ok {
			continue
		}
		matching++
		if minTTL < 0 || r.pttl < minTTL {
			minTTL = r.pttl
		}
	}

	if matching < m.quorum() {
		return 0, nil
	}
	remaining := time.Duration(minTTL)*time.Millisecond - m.drift()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Do 以作用域方式持锁执行 fn：获取 → 执行 → 释放。
// 获取失败（竞争落败或超时）返回 [ErrQuorumNotAchieved]。
// 获取行为由 WithContextBlocking / WithContextTimeout 控制。
func (m *Mutex) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	ok, err := m.acquire(ctx, m.opts.ContextBlocking, m.opts.ContextTimeout)
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuorumNotAchieved
	}
	defer func() {
		_ = m.Release(ctx)
	}()
	return fn(ctx)
}

// fanOut 并行向所有节点执行 op，返回成功节点数。
// 单节点预算为 AutoReleaseTime / N，防止慢节点吃掉整个租约；
// 传输错误只计为该节点失败，不上抛。
func (m *Mutex) fanOut(ctx context.Context, op func(ctx context.Context, c redis.UniversalClient) (bool, error)) int {
	results := make(chan bool, len(m.clients))
	perMaster := m.perMasterTimeout()
	for _, c := range m.clients {
		go func(c redis.UniversalClient) {
			opCtx, cancel := context.WithTimeout(ctx, perMaster)
			defer cancel()
			ok, err := op(opCtx, c)
			if err != nil {
				if m.opts.Logger != nil {
					m.opts.Logger.DebugContext(ctx, "xredlock: master request failed",
						"key", m.key, "error", err)
				}
				results <- false
				return
			}
			results <- ok
		}(c)
	}

	granted := 0
	for range m.clients {
		if <-results {
			granted++
		}
	}
	return granted
}

// perMasterTimeout 返回单节点尝试预算。
func (m *Mutex) perMasterTimeout() time.Duration {
	return m.opts.AutoReleaseTime / time.Duration(len(m.clients))
}

// freshToken 生成全新的随机 128 位令牌。
func freshToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// randomDelay 返回 [0, max) 内的随机等待时长。
// crypto/rand 失败时返回 max/2，保持重试仍然错开。
func randomDelay(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return max / 2
	}
	return time.Duration(binary.LittleEndian.Uint64(buf[:]) % uint64(max))
}
