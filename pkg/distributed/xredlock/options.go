package xredlock

import (
	"log/slog"
	"time"
)

// Options 定义锁配置。
type Options struct {
	// AutoReleaseTime 租约时长，既是各节点 key 的 TTL，
	// 也决定单节点尝试预算（AutoReleaseTime / N）。默认 10s。
	AutoReleaseTime time.Duration

	// Blocking Acquire 在竞争时是否阻塞重试。默认 true。
	Blocking bool

	// Timeout 阻塞模式下的最长等待时间，0 表示无限重试。默认 0。
	Timeout time.Duration

	// ContextBlocking / ContextTimeout 是 Do 作用域使用的对应选项。
	ContextBlocking bool
	ContextTimeout  time.Duration

	// NumExtensions 单次获取允许的最大续期次数。默认 3。
	NumExtensions int

	// DriftFactor 时钟漂移余量占租约的比例。默认 0.01。
	DriftFactor float64

	// RetryDelay 阻塞重试的随机退避上界：每轮失败后等待 [0, RetryDelay)。
	// 默认 200ms。
	RetryDelay time.Duration

	// Logger 用于记录单节点失败等调试日志，默认 slog.Default()，nil 禁用。
	Logger *slog.Logger
}

// Option 定义配置选项函数类型。
type Option func(*Options)

// defaultOptions 返回默认的锁配置。
func defaultOptions() *Options {
	return &Options{
		AutoReleaseTime: 10 * time.Second,
		Blocking:        true,
		Timeout:         0,
		ContextBlocking: true,
		ContextTimeout:  0,
		NumExtensions:   3,
		DriftFactor:     0.01,
		RetryDelay:      200 * time.Millisecond,
		Logger:          slog.Default(),
	}
}

// WithAutoReleaseTime 设置租约时长。
// 租约应大于临界区执行时间，不足时需调用 Extend 续期。
func WithAutoReleaseTime(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.AutoReleaseTime = d
		}
	}
}

// WithBlocking 设置 Acquire 在竞争时是否阻塞重试。
func WithBlocking(b bool) Option {
	return func(o *Options) {
		o.Blocking = b
	}
}

// WithTimeout 设置阻塞模式下的最长等待时间。
// 0 表示无限重试。负值被忽略。
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithContextBlocking 设置 Do 作用域获取锁时是否阻塞。
func WithContextBlocking(b bool) Option {
	return func(o *Options) {
		o.ContextBlocking = b
	}
}

// WithContextTimeout 设置 Do 作用域获取锁的最长等待时间。
func WithContextTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.ContextTimeout = d
		}
	}
}

// WithNumExtensions 设置单次获取允许的最大续期次数。
// 负值被忽略。
func WithNumExtensions(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.NumExtensions = n
		}
	}
}

// WithDriftFactor 设置时钟漂移因子。
// 值必须 > 0，0 会破坏 Redlock 的时钟漂移补偿。
func WithDriftFactor(f float64) Option {
	return func(o *Options) {
		if f > 0 {
			o.DriftFactor = f
		}
	}
}

// WithRetryDelay 设置阻塞重试的随机退避上界。
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.RetryDelay = d
		}
	}
}

// WithLogger 设置自定义 Logger。
// 传入 nil 将禁用日志输出。
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
